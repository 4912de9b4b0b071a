// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pidlozhevich/lawsite/internal/notion"
)

// defaultCalloutIcon is used when the source callout has no emoji icon.
const defaultCalloutIcon = "💡"

// BlockRenderer converts a block tree into sanitized HTML. Rendering is
// pure: all children are already resolved on the blocks, so no I/O happens
// here.
type BlockRenderer struct {
	policy *bluemonday.Policy
}

// NewBlockRenderer builds a renderer with the content sanitization policy.
func NewBlockRenderer() *BlockRenderer {
	return &BlockRenderer{policy: contentPolicy()}
}

// contentPolicy extends the stock UGC policy with the extra elements the
// block renderer emits: collapsible sections, figures, and the underline
// and strikethrough wrappers.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AllowElements("details", "summary", "figure", "figcaption", "u", "s", "aside", "span")
	p.AllowAttrs("class").OnElements("code", "pre", "div", "aside", "span", "details", "figure")
	return p
}

// Render converts an ordered block sequence into one sanitized HTML
// fragment. It never fails: unknown block types degrade to a visible
// placeholder.
func (br *BlockRenderer) Render(blocks []notion.Block) template.HTML {
	var sb strings.Builder
	renderSequence(&sb, blocks)
	return template.HTML(br.policy.Sanitize(sb.String()))
}

// renderSequence walks the blocks once, grouping runs of consecutive
// same-type list items into a single list container. A run is closed by a
// list item of the other type, by any non-list block, and at end of input;
// runs separated by a non-list block stay separate lists.
func renderSequence(sb *strings.Builder, blocks []notion.Block) {
	var runType notion.BlockType

	closeRun := func() {
		switch runType {
		case notion.BlockBulletedListItem:
			sb.WriteString("</ul>")
		case notion.BlockNumberedListItem:
			sb.WriteString("</ol>")
		}
		runType = ""
	}

	for i := range blocks {
		b := &blocks[i]

		if b.IsListItem() {
			if runType != b.Type {
				closeRun()
				if b.Type == notion.BlockBulletedListItem {
					sb.WriteString("<ul>")
				} else {
					sb.WriteString("<ol>")
				}
				runType = b.Type
			}
			renderListItem(sb, b)
			continue
		}

		closeRun()
		renderBlock(sb, b)
	}

	closeRun()
}

func renderListItem(sb *strings.Builder, b *notion.Block) {
	sb.WriteString("<li>")
	renderRichTexts(sb, b.RichTexts())
	if len(b.Children) > 0 {
		renderSequence(sb, b.Children)
	}
	sb.WriteString("</li>")
}

func renderBlock(sb *strings.Builder, b *notion.Block) {
	switch b.Type {
	case notion.BlockParagraph:
		sb.WriteString("<p>")
		renderRichTexts(sb, b.RichTexts())
		sb.WriteString("</p>")
		if len(b.Children) > 0 {
			renderSequence(sb, b.Children)
		}

	case notion.BlockHeading1, notion.BlockHeading2, notion.BlockHeading3:
		renderHeading(sb, b)

	case notion.BlockQuote:
		sb.WriteString("<blockquote>")
		renderRichTexts(sb, b.RichTexts())
		if len(b.Children) > 0 {
			renderSequence(sb, b.Children)
		}
		sb.WriteString("</blockquote>")

	case notion.BlockCode:
		renderCode(sb, b.Code)

	case notion.BlockImage:
		renderImage(sb, b.Image)

	case notion.BlockCallout:
		renderCallout(sb, b.Callout)

	case notion.BlockDivider:
		sb.WriteString("<hr>")

	case notion.BlockChildPage:
		// Child pages are posts in their own right, not inline content.

	default:
		fmt.Fprintf(sb, `<div class="unsupported-block">Unsupported block type: %s</div>`,
			html.EscapeString(string(b.Type)))
	}
}

// renderHeading emits a plain heading, or a collapsed container whose
// expanded body is the recursive render of the heading's children when the
// heading is toggleable.
func renderHeading(sb *strings.Builder, b *notion.Block) {
	tag := "h2"
	switch b.Type {
	case notion.BlockHeading1:
		tag = "h1"
	case notion.BlockHeading3:
		tag = "h3"
	}

	h := b.Heading()
	if h != nil && h.IsToggleable {
		sb.WriteString(`<details class="toggle-heading"><summary>`)
		renderRichTexts(sb, b.RichTexts())
		sb.WriteString("</summary>")
		renderSequence(sb, b.Children)
		sb.WriteString("</details>")
		return
	}

	sb.WriteString("<" + tag + ">")
	renderRichTexts(sb, b.RichTexts())
	sb.WriteString("</" + tag + ">")
}

func renderCode(sb *strings.Builder, code *notion.CodeBlock) {
	if code == nil {
		return
	}

	var text strings.Builder
	for _, rt := range code.RichText {
		text.WriteString(rt.PlainText)
	}

	sb.WriteString("<pre><code")
	if code.Language != "" {
		fmt.Fprintf(sb, ` class="language-%s"`, html.EscapeString(code.Language))
	}
	sb.WriteString(">")
	sb.WriteString(html.EscapeString(text.String()))
	sb.WriteString("</code></pre>")
}

// renderImage resolves the source from either hosting variant and skips the
// block entirely when neither resolves.
func renderImage(sb *strings.Builder, img *notion.ImageBlock) {
	url := img.URLString()
	if url == "" {
		return
	}

	caption := plainText(img.Caption)

	sb.WriteString("<figure>")
	fmt.Fprintf(sb, `<img src="%s" alt="%s">`,
		html.EscapeString(url), html.EscapeString(caption))
	if caption != "" {
		fmt.Fprintf(sb, "<figcaption>%s</figcaption>", html.EscapeString(caption))
	}
	sb.WriteString("</figure>")
}

func renderCallout(sb *strings.Builder, callout *notion.CalloutBlock) {
	if callout == nil {
		return
	}

	icon := defaultCalloutIcon
	if callout.Icon != nil && callout.Icon.Emoji != "" {
		icon = callout.Icon.Emoji
	}

	sb.WriteString(`<aside class="callout">`)
	fmt.Fprintf(sb, `<span class="callout-icon">%s</span>`, html.EscapeString(icon))
	sb.WriteString(`<div class="callout-text">`)
	renderRichTexts(sb, callout.RichText)
	sb.WriteString("</div></aside>")
}

func renderRichTexts(sb *strings.Builder, rts []notion.RichText) {
	for _, rt := range rts {
		sb.WriteString(renderSpan(rt))
	}
}

// renderSpan renders one styled span. Style wrappers are layered in a
// fixed order regardless of which flags are set: link outermost, then
// inline code, bold, italic, strikethrough, underline innermost.
func renderSpan(rt notion.RichText) string {
	out := html.EscapeString(rt.PlainText)

	a := rt.Annotations
	if a.Underline {
		out = "<u>" + out + "</u>"
	}
	if a.Strikethrough {
		out = "<s>" + out + "</s>"
	}
	if a.Italic {
		out = "<em>" + out + "</em>"
	}
	if a.Bold {
		out = "<strong>" + out + "</strong>"
	}
	if a.Code {
		out = "<code>" + out + "</code>"
	}
	if url := rt.LinkURL(); url != "" {
		out = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), out)
	}

	return out
}

func plainText(rts []notion.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		sb.WriteString(rt.PlainText)
	}
	return sb.String()
}
