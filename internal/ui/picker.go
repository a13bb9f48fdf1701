package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// imageExtensions are the file types the algorithm-photo picker offers.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// newImagePicker configures a filepicker for choosing the algorithm photo.
// It starts in the working directory, where a freshly saved photo usually
// lands, and falls back to the home directory.
func newImagePicker() filepicker.Model {
	fp := filepicker.New()

	if cwd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = cwd
	} else if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	fp.AllowedTypes = imageExtensions
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = 12

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(shared.ColorSecondary).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(shared.ColorPrimary).Bold(true)
	fp.Styles.File = lipgloss.NewStyle().Foreground(shared.ColorText)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(shared.ColorSecondary).Bold(true)
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(shared.ColorSubtle)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(shared.ColorMuted).Italic(true)
	fp.Cursor = ">"

	return fp
}
