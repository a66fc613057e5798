package ui

import "sync"

// ClipboardProvider abstracts system clipboard access.
// Implement this interface with platform-specific clipboard APIs.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) GetText() string {
//	    return c.window.GetClipboardString()
//	}
//
//	func (c *GLFWClipboard) SetText(text string) {
//	    c.window.SetClipboardString(text)
//	}
type ClipboardProvider interface {
	// GetText returns the clipboard text, or "" when it holds none.
	GetText() string

	// SetText replaces the clipboard contents.
	SetText(text string)
}

// MemoryClipboard is an in-process clipboard. It is the engine default and
// what headless tests use.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// GetText implements ClipboardProvider.
func (c *MemoryClipboard) GetText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText implements ClipboardProvider.
func (c *MemoryClipboard) SetText(text string) {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}
