package common

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// BrowserConfig controls the headless browser used by the UI tests.
type BrowserConfig struct {
	Headless bool
	Timeout  time.Duration
}

func DefaultBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

func NewBrowserContext(cfg *BrowserConfig) (context.Context, context.CancelFunc) {
	if cfg == nil {
		cfg = DefaultBrowserConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	ctx, timeoutCancel := context.WithTimeout(ctx, cfg.Timeout)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return ctx, cancel
}

type JSErrorCollector struct {
	mu     sync.Mutex
	errors []string
}

func NewJSErrorCollector(ctx context.Context) *JSErrorCollector {
	c := &JSErrorCollector{}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		c.mu.Lock()
		defer c.mu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			if strings.Contains(desc, "Content Security Policy") {
				return
			}
			c.errors = append(c.errors, fmt.Sprintf("EXCEPTION: %s", desc))

		case *runtime.EventConsoleAPICalled:
			if e.Type == runtime.APITypeError {
				var parts []string
				for _, arg := range e.Args {
					if arg.Value != nil {
						parts = append(parts, string(arg.Value))
					} else if arg.Description != "" {
						parts = append(parts, arg.Description)
					}
				}
				if len(parts) > 0 {
					msg := strings.Join(parts, " ")
					if !strings.Contains(msg, "favicon") && !strings.Contains(msg, "Content Security Policy") {
						c.errors = append(c.errors, fmt.Sprintf("console.error: %s", msg))
					}
				}
			}
		}
	})

	return c
}

func (c *JSErrorCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

func (c *JSErrorCollector) HasErrors() bool {
	return len(c.Errors()) > 0
}

// ChromeAvailable reports whether a Chrome or Chromium binary is on PATH.
func ChromeAvailable() bool {
	if os.Getenv("BRIEFING_SKIP_BROWSER") != "" {
		return false
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func NavigateAndWait(ctx context.Context, url string, waitMs int) error {
	if waitMs == 0 {
		waitMs = 800
	}
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
	)
}

// TypeAndSubmit fills the input matching selector and submits its form.
func TypeAndSubmit(ctx context.Context, selector, text string, waitMs int) error {
	if waitMs == 0 {
		waitMs = 800
	}
	return chromedp.Run(ctx,
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
		chromedp.Submit(selector, chromedp.ByQuery),
		chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
	)
}

func SetViewport(ctx context.Context, width, height int64) error {
	return chromedp.Run(ctx, chromedp.EmulateViewport(width, height))
}

func IsHidden(ctx context.Context, selector string) (bool, error) {
	var hidden bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				if (!el) return true;
				return getComputedStyle(el).display === 'none';
			})()
		`, escJS(selector)), &hidden),
	)
	return hidden, err
}

func IsVisible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				if (!el) return false;
				return getComputedStyle(el).display !== 'none';
			})()
		`, escJS(selector)), &visible),
	)
	return visible, err
}

func Exists(ctx context.Context, selector string) (bool, error) {
	var exists bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, escJS(selector)), &exists),
	)
	return exists, err
}

func ElementCount(ctx context.Context, selector string) (int, error) {
	var count int
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, escJS(selector)), &count),
	)
	return count, err
}

func TextContains(ctx context.Context, selector, expected string) (bool, string, error) {
	var actual string
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el ? el.textContent.trim() : '';
			})()
		`, escJS(selector)), &actual),
	)
	if err != nil {
		return false, "", err
	}
	return strings.Contains(actual, expected), actual, nil
}

func Click(ctx context.Context, selector string, waitMs int) error {
	if waitMs == 0 {
		waitMs = 300
	}
	return chromedp.Run(ctx,
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
	)
}

func escJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
