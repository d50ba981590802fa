package interact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeRenderer implements Renderer with headless Chrome. Each Render call
// navigates, waits for the body, scrolls to trigger lazy loading, and
// returns the page text.
type ChromeRenderer struct {
	UserAgent string
	MaxChars  int
}

// Render fetches the URL in a headless browser. The caller's context carries
// the per-call timeout.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("empty url")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	if r.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(`document.body.innerText`, &text),
	)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if r.MaxChars > 0 && len(text) > r.MaxChars {
		text = text[:r.MaxChars]
	}
	return text, nil
}
