package notion

import (
	"regexp"
	"strings"

	"github.com/user/cafe-notion-service/internal/entity"
)

// maxBlockChars is the destination's per-paragraph content limit.
const maxBlockChars = 1800

type richText struct {
	Type string   `json:"type"`
	Text textSpan `json:"text"`
}

type textSpan struct {
	Content string `json:"content"`
}

type paragraph struct {
	RichText []richText `json:"rich_text"`
}

type externalFile struct {
	URL string `json:"url"`
}

type fileUploadRef struct {
	ID string `json:"id"`
}

type imageBlock struct {
	Type       string         `json:"type"`
	External   *externalFile  `json:"external,omitempty"`
	FileUpload *fileUploadRef `json:"file_upload,omitempty"`
}

// block is one unit of the destination document body.
type block struct {
	Object    string      `json:"object"`
	Type      string      `json:"type"`
	Paragraph *paragraph  `json:"paragraph,omitempty"`
	Image     *imageBlock `json:"image,omitempty"`
}

func paragraphBlock(text string) block {
	return block{
		Object: "block",
		Type:   "paragraph",
		Paragraph: &paragraph{
			RichText: []richText{{Type: "text", Text: textSpan{Content: text}}},
		},
	}
}

// chunkText splits text into runs of at most size characters; the final
// chunk may be shorter. Re-chunking any chunk at the same size is a no-op.
func chunkText(text string, size int) []string {
	var chunks []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// paragraphBlocks drops blank lines so the page doesn't end up with empty
// paragraphs between images and text.
func paragraphBlocks(lines []string) []block {
	blocks := make([]block, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, paragraphBlock(line))
	}
	return blocks
}

var httpURLPattern = regexp.MustCompile(`(?i)^https?://`)

// externalImageBlocks links images by URL; anything that is not an absolute
// http(s) URL is dropped because the destination rejects it.
func externalImageBlocks(urls []string) []block {
	blocks := make([]block, 0, len(urls))
	for _, u := range urls {
		if !httpURLPattern.MatchString(u) {
			continue
		}
		blocks = append(blocks, block{
			Object: "block",
			Type:   "image",
			Image:  &imageBlock{Type: "external", External: &externalFile{URL: u}},
		})
	}
	return blocks
}

func uploadedImageBlocks(fileIDs []string) []block {
	blocks := make([]block, 0, len(fileIDs))
	for _, id := range fileIDs {
		blocks = append(blocks, block{
			Object: "block",
			Type:   "image",
			Image:  &imageBlock{Type: "file_upload", FileUpload: &fileUploadRef{ID: id}},
		})
	}
	return blocks
}

// buildChildren assembles the page body: the raw source URL when no URL
// property absorbed it, then images (uploaded files win over external links
// whenever any upload succeeded), then the body text in block-sized
// paragraphs.
func buildChildren(post *entity.ExtractedPost, fileIDs []string, urlAbsorbed bool) []block {
	children := make([]block, 0)
	if post.URL != "" && !urlAbsorbed {
		children = append(children, paragraphBlocks([]string{post.URL})...)
	}
	if len(fileIDs) > 0 {
		children = append(children, uploadedImageBlocks(fileIDs)...)
	} else {
		children = append(children, externalImageBlocks(post.ImageURLs)...)
	}
	children = append(children, paragraphBlocks(chunkText(post.ContentText, maxBlockChars))...)
	return children
}
