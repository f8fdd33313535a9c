package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/lorebox/internal/config"
)

// SettingsChange is what a saved settings dialog reports
type SettingsChange struct {
	Origin        string
	OriginChanged bool
	Effects       bool
	Cues          bool
	Volume        float64
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings      *config.Settings
	window        fyne.Window
	texts         *Localization
	defaultOrigin string
	dialog        *dialog.ConfirmDialog

	// OnApply is called after the settings were stored
	OnApply func(SettingsChange)

	// UI components
	originEntry  *widget.Entry
	effectsCheck *widget.Check
	cuesCheck    *widget.Check
	volumeSlider *widget.Slider
	volumeLabel  *widget.Label
}

// NewSettingsDialog creates a new settings dialog. defaultOrigin is shown
// when no origin was saved.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, texts *Localization, defaultOrigin string) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		window:        window,
		texts:         texts,
		defaultOrigin: defaultOrigin,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.originEntry = widget.NewEntry()
	sd.originEntry.SetPlaceHolder(sd.texts.GetText(KeyOriginHint))

	sd.effectsCheck = widget.NewCheck(sd.texts.GetText(KeyEffects), nil)
	sd.cuesCheck = widget.NewCheck(sd.texts.GetText(KeyCues), nil)

	sd.volumeLabel = widget.NewLabel("")
	sd.volumeSlider = widget.NewSlider(0, 1)
	sd.volumeSlider.Step = 0.05
	sd.volumeSlider.OnChanged = func(v float64) {
		sd.volumeLabel.SetText(fmt.Sprintf("%.0f%%", v*100))
	}

	form := container.NewVBox(
		widget.NewLabel(sd.texts.GetText(KeyOrigin)+":"),
		sd.originEntry,

		widget.NewSeparator(),
		sd.effectsCheck,
		sd.cuesCheck,

		widget.NewLabel(sd.texts.GetText(KeyVolume)+":"),
		container.NewBorder(nil, nil, nil, sd.volumeLabel, sd.volumeSlider),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.texts.GetText(KeySettings),
		sd.texts.GetText(KeySave),
		sd.texts.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(460, 320))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.originEntry.SetText(sd.settings.GetContentOrigin(sd.defaultOrigin))
	sd.effectsCheck.SetChecked(sd.settings.GetEffectsEnabled())
	sd.cuesCheck.SetChecked(sd.settings.GetCuesEnabled())
	sd.volumeSlider.SetValue(sd.settings.GetVolume())
}

// onSave stores the form and reports the change
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
}

func (sd *SettingsDialog) apply() {
	previous := sd.settings.GetContentOrigin(sd.defaultOrigin)

	origin := strings.TrimSpace(sd.originEntry.Text)
	if origin == "" {
		origin = sd.defaultOrigin
	}
	sd.settings.SetContentOrigin(origin)
	sd.settings.SetEffectsEnabled(sd.effectsCheck.Checked)
	sd.settings.SetCuesEnabled(sd.cuesCheck.Checked)
	sd.settings.SetVolume(sd.volumeSlider.Value)

	change := SettingsChange{
		Origin:        sd.settings.GetContentOrigin(sd.defaultOrigin),
		OriginChanged: origin != previous,
		Effects:       sd.settings.GetEffectsEnabled(),
		Cues:          sd.settings.GetCuesEnabled(),
		Volume:        sd.settings.GetVolume(),
	}
	if sd.OnApply != nil {
		sd.OnApply(change)
	}
}
