package ui

// Package ui contains the Fyne-based desktop user interface. It draws the lore
// book and the music box, forwards clicks, keys and swipes to the lore and
// music packages, and shows notices and settings. Widget updates coming from
// background goroutines go through fyne.Do.
