package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var (
	codeBlockRe    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe   = regexp.MustCompile("`[^`]+`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	wikiAliasRe    = regexp.MustCompile(`\[\[[^\]|]+\|([^\]]+)\]\]`)
	wikiLinkRe     = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>\s*`)
	hrRe           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedListRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)

	// dateNameRe matches file names that start with an ISO date, the
	// common naming scheme for daily journal entries.
	dateNameRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Normaliser handles Markdown entries, including Obsidian-flavoured
// notes with YAML frontmatter and wikilinks.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise converts a markdown entry to normalised form. The text has
// markdown formatting simplified and any frontmatter removed. The title
// comes from frontmatter, the first H1 heading, or the filename, in
// that order. Chunking is handled by the PostProcessor pipeline.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawEntry) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	body, title := stripFrontmatter(raw.Text)

	if title == "" {
		title = extractMarkdownTitle(body, raw.Path)
	}

	return &driven.NormaliseResult{
		Title: title,
		Text:  stripMarkdown(body),
	}, nil
}

// stripFrontmatter removes a leading YAML frontmatter block delimited
// by --- lines. It returns the remaining body and the frontmatter's
// title value, if one is present. Content without a closed frontmatter
// block is returned unchanged.
func stripFrontmatter(content string) (body, title string) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return content, ""
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if line == "---" {
			return strings.Join(lines[i+1:], "\n"), title
		}
		if strings.HasPrefix(line, "title:") {
			title = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "title:")), `"'`)
		}
	}

	// No closing delimiter, so the opening --- was a horizontal rule.
	return content, ""
}

// extractMarkdownTitle extracts a title from the first H1 heading or
// falls back to the filename.
func extractMarkdownTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	return titleFromPath(path)
}

// stripMarkdown removes common markdown formatting for plain text
// content. This is a simplified implementation that handles the cases
// seen in journal notes.
func stripMarkdown(content string) string {
	// Remove code blocks (```...```)
	content = codeBlockRe.ReplaceAllString(content, "")

	// Remove inline code (`code`)
	content = inlineCodeRe.ReplaceAllString(content, "")

	// Remove images ![alt](url)
	content = imageRe.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	content = linkRe.ReplaceAllString(content, "$1")

	// Convert wikilinks: [[target|alias]] to alias, [[target]] to target
	content = wikiAliasRe.ReplaceAllString(content, "$1")
	content = wikiLinkRe.ReplaceAllString(content, "$1")

	// Remove heading markers (# ## ### etc)
	content = headingRe.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	// Remove blockquote markers
	content = blockquoteRe.ReplaceAllString(content, "")

	// Remove horizontal rules
	content = hrRe.ReplaceAllString(content, "")

	// Remove list markers (- * + and numbered)
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedListRe.ReplaceAllString(content, "")

	// Collapse multiple newlines
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// titleFromPath derives a display title from a file path.
func titleFromPath(path string) string {
	if path == "" {
		return ""
	}
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return prettyName(name)
}

// prettyName turns a file-style name into a display title.
// Date-like names such as 2025-08-11 are kept verbatim.
func prettyName(name string) string {
	if dateNameRe.MatchString(name) {
		return name
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
