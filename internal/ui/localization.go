package ui

// Localization holds the UI text table. The viewer ships a single language;
// keys keep every string in one place.
type Localization struct {
	texts map[string]string
}

// Text keys
const (
	KeyAppTitle       = "app_title"
	KeyLoreTab        = "lore_tab"
	KeyMusicTab       = "music_tab"
	KeyPrevious       = "previous"
	KeyNext           = "next"
	KeySettings       = "settings"
	KeyReload         = "reload"
	KeyFile           = "file"
	KeySave           = "save"
	KeyCancel         = "cancel"
	KeyOrigin         = "origin"
	KeyOriginHint     = "origin_hint"
	KeyEffects        = "effects"
	KeyCues           = "cues"
	KeyVolume         = "volume"
	KeySettingsSaved  = "settings_saved"
	KeyOriginChanged  = "origin_changed"
	KeyLoading        = "loading"
	KeyUnknownTrack   = "unknown_track"
	KeyOpenVideo      = "open_video"
	KeyImageFailed    = "image_failed"
	KeyNothingPlaying = "nothing_playing"
)

// NewLocalization creates the text table
func NewLocalization() *Localization {
	l := &Localization{texts: make(map[string]string)}
	l.initializeTexts()
	return l
}

// GetText returns the text for the given key, or the key itself when missing
func (l *Localization) GetText(key string) string {
	if text, found := l.texts[key]; found {
		return text
	}
	return key
}

// initializeTexts fills the text table
func (l *Localization) initializeTexts() {
	l.texts = map[string]string{
		KeyAppTitle:       "Lorebox",
		KeyLoreTab:        "Lore",
		KeyMusicTab:       "Music box",
		KeyPrevious:       "Previous page",
		KeyNext:           "Next page",
		KeySettings:       "Settings",
		KeyReload:         "Reload content",
		KeyFile:           "File",
		KeySave:           "Save",
		KeyCancel:         "Cancel",
		KeyOrigin:         "Content origin",
		KeyOriginHint:     "http(s)://site/ or a local folder (empty = default)",
		KeyEffects:        "Rune effects while playing",
		KeyCues:           "Sound cues",
		KeyVolume:         "Volume",
		KeySettingsSaved:  "Settings saved",
		KeyOriginChanged:  "Content origin changed, reloading",
		KeyLoading:        "Loading content...",
		KeyUnknownTrack:   "Unknown Track",
		KeyOpenVideo:      "Open video",
		KeyImageFailed:    "Image unavailable",
		KeyNothingPlaying: "Pick a rune to play",
	}
}
