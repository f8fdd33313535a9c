package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// MobileUI makes the layout decisions that depend on the device
type MobileUI struct {
	device fyne.Device
}

// NewMobileUI creates a new device aware layout helper
func NewMobileUI(device fyne.Device) *MobileUI {
	return &MobileUI{device: device}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.device != nil && m.device.IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	if m.device == nil {
		return true
	}
	orientation := m.device.Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// BookLayout places the two halves side by side, or stacked on a phone held
// upright
func (m *MobileUI) BookLayout(left, right fyne.CanvasObject) fyne.CanvasObject {
	if m.IsMobileDevice() && !m.IsLandscape() {
		split := container.NewVSplit(left, right)
		split.SetOffset(HalfSplit)
		return split
	}

	split := container.NewHSplit(left, right)
	split.SetOffset(HalfSplit)
	return split
}

// Spacing returns appropriate spacing for the device
func (m *MobileUI) Spacing() float32 {
	if m.IsMobileDevice() {
		return 16 // Larger spacing for mobile
	}
	return 8
}
