package chromedp_extractor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/chromedp/chromedp"
)

// frameDoc is a point-in-time snapshot of one renderable document: the
// top-level page or a same-origin iframe reachable from it. Snapshots are
// taken once per navigation so ranking and extraction never race an
// in-flight page mutation.
type frameDoc struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	HTML string `json:"html"`
}

// contentFrameSelector matches the iframes the desktop layout is known to
// render the post into.
const contentFrameSelector = `iframe#iframe, iframe#cafe_main, iframe[name="cafe_main"]`

// contentFrameName is the canonical name of the desktop content frame.
const contentFrameName = "cafe_main"

// articleFramePattern marks frame URLs that look like an article view.
var articleFramePattern = regexp.MustCompile(`(?i)ArticleRead|articleid|Article`)

// frameSnapshotJS walks the document tree and captures every reachable
// frame's URL, name and markup in one evaluation. Cross-origin frames throw
// on contentDocument access and are skipped.
const frameSnapshotJS = `(() => {
  const out = [{
    url: document.location.href,
    name: "",
    html: document.documentElement ? document.documentElement.outerHTML : "",
  }];
  const walk = (doc) => {
    for (const el of doc.querySelectorAll("iframe")) {
      let child = null;
      try { child = el.contentDocument; } catch (e) { continue; }
      if (!child) continue;
      out.push({
        url: child.location ? child.location.href : "",
        name: el.getAttribute("name") || el.getAttribute("id") || "",
        html: child.documentElement ? child.documentElement.outerHTML : "",
      });
      walk(child);
    }
  };
  walk(document);
  return out;
})()`

// snapshotFrames captures the current frame documents of the navigated page.
func snapshotFrames(ctx context.Context) ([]frameDoc, error) {
	var frames []frameDoc
	if err := chromedp.Run(ctx, chromedp.Evaluate(frameSnapshotJS, &frames)); err != nil {
		return nil, fmt.Errorf("failed to snapshot frames: %w", err)
	}
	return frames, nil
}

// rankFrames orders extraction candidates most-promising first: frames whose
// URL looks like an article view in discovery order, then the canonical
// content frame, then the rest. Blank or unresolved frames are dropped.
func rankFrames(frames []frameDoc) []frameDoc {
	live := make([]frameDoc, 0, len(frames))
	for _, f := range frames {
		if f.URL == "" || f.URL == "about:blank" {
			continue
		}
		live = append(live, f)
	}

	ranked := make([]frameDoc, 0, len(live))
	taken := make([]bool, len(live))

	for i, f := range live {
		if articleFramePattern.MatchString(f.URL) {
			ranked = append(ranked, f)
			taken[i] = true
		}
	}
	for i, f := range live {
		if !taken[i] && f.Name == contentFrameName {
			ranked = append(ranked, f)
			taken[i] = true
		}
	}
	for i, f := range live {
		if !taken[i] {
			ranked = append(ranked, f)
		}
	}
	return ranked
}
