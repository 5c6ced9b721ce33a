package chart

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/KaramelBytes/fraudeval/internal/utils"
)

// Renderer saves confusion-matrix figures under Dir and optionally opens them
// in the system viewer.
type Renderer struct {
	Dir  string
	Show bool
	// Opener overrides the system viewer; nil uses the platform default.
	Opener func(path string) error
}

// PlotConfusionMatrix draws the heatmap for yTrue/yPred titled title, saves it
// as <Dir>/<slug(title)>.png and returns the written path.
func (r *Renderer) PlotConfusionMatrix(yTrue, yPred []int, title string) (string, error) {
	fig, err := ConfusionMatrix(yTrue, yPred, title)
	if err != nil {
		return "", err
	}
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, utils.Slug(title)+".png")
	if err := fig.Save(path); err != nil {
		return "", err
	}
	if r.Show {
		open := r.Opener
		if open == nil {
			open = openFile
		}
		if err := open(path); err != nil {
			return path, fmt.Errorf("open %s: %w", path, err)
		}
	}
	return path, nil
}

func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
