package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "lorebox.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// bytesResource wraps fetched media so canvas objects can draw it
func bytesResource(name string, data []byte) fyne.Resource {
	return fyne.NewStaticResource(name, data)
}
