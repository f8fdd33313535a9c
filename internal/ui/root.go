package ui

import (
	"context"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/lorebox/internal/config"
	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/lore"
	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/music"
)

// RootOptions carries what the window needs from the application
type RootOptions struct {
	Settings      *config.Settings
	Media         MediaResolver
	Renderer      lore.Renderer
	PageCue       lore.Cue
	DefaultOrigin string
	Log           *logging.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx      context.Context
	window   fyne.Window
	app      fyne.App
	settings *config.Settings
	texts    *Localization
	log      *logging.Logger

	book      *lore.Book
	bookView  *BookView
	musicView *MusicBoxView
	tabs      *container.AppTabs
	loreTab   *container.TabItem

	controllerMu sync.RWMutex
	controller   *music.Controller

	settingsDialog *SettingsDialog

	// OnReload is called from the menu and the reload button
	OnReload func()
	// OnSettingsApplied is called after the settings dialog was saved
	OnSettingsApplied func(SettingsChange)

	// Notice bar
	noticeContainer *fyne.Container
	noticeLabel     *widget.Label
	noticeSpinner   *widget.ProgressBarInfinite
	noticeMu        sync.Mutex
	noticeID        string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, opts RootOptions) *RootUI {
	texts := NewLocalization()

	ui := &RootUI{
		ctx:      ctx,
		window:   window,
		app:      app,
		settings: opts.Settings,
		texts:    texts,
		log:      logging.OrNop(opts.Log).With("widget", "ui"),
	}

	window.SetTitle(texts.GetText(KeyAppTitle))

	ui.bookView = NewBookView(ctx, texts, opts.Media, ui.openURL, NewMobileUI(fyne.CurrentDevice()), ui.turnPage, ui.log)
	ui.book = lore.NewBook(opts.Renderer, ui.bookView, opts.PageCue, ui.log)
	ui.musicView = NewMusicBoxView(texts, ui.postMusic, ui.ShowNotice, ui.log)

	if opts.Settings != nil {
		ui.settingsDialog = NewSettingsDialog(opts.Settings, window, texts, opts.DefaultOrigin)
		ui.settingsDialog.OnApply = ui.onSettingsApplied
	}

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	reloadBtn := widget.NewButton(IconReload, ui.onReload)
	reloadBtn.Importance = widget.LowImportance

	title := widget.NewLabel(ui.texts.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, reloadBtn, title)

	// Notice bar under the top panel, hidden by default
	ui.noticeLabel = widget.NewLabel("")
	ui.noticeLabel.Wrapping = fyne.TextWrapWord
	ui.noticeSpinner = widget.NewProgressBarInfinite()
	ui.noticeSpinner.Hide()
	ui.noticeContainer = container.NewBorder(nil, nil, ui.noticeSpinner, nil, container.NewPadded(ui.noticeLabel))
	ui.noticeContainer.Hide()

	ui.loreTab = container.NewTabItem(ui.texts.GetText(KeyLoreTab), ui.bookView.Content())
	ui.tabs = container.NewAppTabs(
		ui.loreTab,
		container.NewTabItem(ui.texts.GetText(KeyMusicTab), ui.musicView.Content()),
	)

	content := container.NewBorder(container.NewVBox(topPanel, ui.noticeContainer), nil, nil, nil, ui.tabs)
	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(BookMinWidth+80, BookMinHeight+160))

	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.texts.GetText(KeySettings), ui.onShowSettings)
	reloadItem := fyne.NewMenuItem(ui.texts.GetText(KeyReload), ui.onReload)

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.texts.GetText(KeyFile), settingsItem, reloadItem),
	)
	ui.window.SetMainMenu(mainMenu)
}

// onTypedKey turns pages with the arrow keys while the book is shown
func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	if ui.tabs.Selected() != ui.loreTab {
		return
	}
	switch ev.Name {
	case fyne.KeyLeft, fyne.KeyPageUp:
		ui.turnPage(lore.Previous{})
	case fyne.KeyRight, fyne.KeyPageDown:
		ui.turnPage(lore.Next{})
	}
}

// turnPage runs on the UI thread
func (ui *RootUI) turnPage(msg lore.Msg) {
	ui.book.Handle(msg)
}

// Window returns the main window
func (ui *RootUI) Window() fyne.Window {
	return ui.window
}

// Book returns the lore book shown in the lore tab
func (ui *RootUI) Book() *lore.Book {
	return ui.book
}

// BookView returns the lore surface
func (ui *RootUI) BookView() *BookView {
	return ui.bookView
}

// MusicView returns the music box surface
func (ui *RootUI) MusicView() *MusicBoxView {
	return ui.musicView
}

// BindMusic routes slot clicks to the controller
func (ui *RootUI) BindMusic(controller *music.Controller) {
	ui.controllerMu.Lock()
	ui.controller = controller
	ui.controllerMu.Unlock()
}

func (ui *RootUI) postMusic(msg music.Msg) {
	ui.controllerMu.RLock()
	controller := ui.controller
	ui.controllerMu.RUnlock()

	if controller == nil {
		ui.log.Debug("music message dropped before controller bind")
		return
	}
	controller.Post(ui.ctx, msg)
}

// ShowLore replaces the book content. Safe to call from any goroutine.
func (ui *RootUI) ShowLore(content model.Lore) {
	fyne.Do(func() {
		ui.book.Load(content.Pages)
	})
}

// ShowNotice displays a notice that hides itself after NoticeAutoHide. A newer
// notice keeps the bar open for its own duration.
func (ui *RootUI) ShowNotice(n music.Notice) {
	ui.noticeMu.Lock()
	ui.noticeID = n.ID
	ui.noticeMu.Unlock()

	ui.showNotice(n.Text, false)

	time.AfterFunc(NoticeAutoHide, func() {
		ui.noticeMu.Lock()
		current := ui.noticeID == n.ID
		ui.noticeMu.Unlock()
		if current {
			ui.hideNotice()
		}
	})
}

// ShowLoading displays a spinning notice until the next notice or HideNotice
func (ui *RootUI) ShowLoading() {
	ui.noticeMu.Lock()
	ui.noticeID = ""
	ui.noticeMu.Unlock()

	ui.showNotice(ui.texts.GetText(KeyLoading), true)
}

// HideNotice closes the notice bar
func (ui *RootUI) HideNotice() {
	ui.noticeMu.Lock()
	ui.noticeID = ""
	ui.noticeMu.Unlock()

	ui.hideNotice()
}

// NoticeText returns the text on the notice bar, empty when hidden
func (ui *RootUI) NoticeText() string {
	if !ui.noticeContainer.Visible() {
		return ""
	}
	return ui.noticeLabel.Text
}

func (ui *RootUI) showNotice(message string, spinning bool) {
	fyne.Do(func() {
		ui.noticeLabel.SetText(message)
		if spinning {
			ui.noticeSpinner.Show()
		} else {
			ui.noticeSpinner.Hide()
		}
		ui.noticeContainer.Show()
		ui.noticeContainer.Refresh()
	})
}

func (ui *RootUI) hideNotice() {
	fyne.Do(func() {
		ui.noticeSpinner.Hide()
		ui.noticeContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	if ui.settingsDialog == nil {
		return
	}
	ui.settingsDialog.Show()
}

func (ui *RootUI) onSettingsApplied(change SettingsChange) {
	if change.OriginChanged {
		ui.ShowNotice(music.NewNotice(ui.texts.GetText(KeyOriginChanged)))
	} else {
		ui.ShowNotice(music.NewNotice(ui.texts.GetText(KeySettingsSaved)))
	}

	ui.postMusic(music.EffectsEnabled{Enabled: change.Effects})

	if ui.OnSettingsApplied != nil {
		ui.OnSettingsApplied(change)
	}
}

func (ui *RootUI) onReload() {
	if ui.OnReload != nil {
		ui.OnReload()
	}
}

// openURL hands media links to the system
func (ui *RootUI) openURL(u *url.URL) error {
	if ui.app == nil {
		return nil
	}
	return ui.app.OpenURL(u)
}
