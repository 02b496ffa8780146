// Package mrkdwn rewrites GitHub-style Markdown into Slack's mrkdwn dialect.
// It is a lossy rule-based rewriter, not a Markdown parser: anything it does
// not recognize passes through as plain text.
package mrkdwn

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/slack-go/slack"
)

const (
	// blockLimit is the practical character capacity of one Slack section
	// block; oversized text is split at paragraph boundaries.
	blockLimit = 3000

	// fallbackLimit caps the plain notification text of a message.
	fallbackLimit = 2000
)

// Convert rewrites a Markdown document into Slack section blocks plus a plain
// fallback string for the notification line. Pure: identical input yields
// identical output.
func Convert(markdown string) ([]slack.Block, string) {
	text := Rewrite(markdown)
	chunks := chunk(text, blockLimit)

	blocks := make([]slack.Block, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, c, false, false), nil, nil))
	}

	var fallback string
	if len(chunks) > 0 {
		fallback = truncateRunes(chunks[0], fallbackLimit)
	}
	return blocks, fallback
}

// Rewrite applies the token rules to one string:
// fenced code blocks are preserved verbatim (Slack renders ``` natively),
// [text](url) becomes <url|text>, **bold** becomes *bold*, *italic* becomes
// _italic_, heading lines are bolded whole, and -/* list markers become •.
func Rewrite(md string) string {
	saved := map[string]string{}
	md = codeBlockExpr.ReplaceAllStringFunc(md, func(m string) string {
		key := fmt.Sprintf("\x00CODE%d\x00", len(saved))
		saved[key] = m
		return key
	})

	md = linkExpr.ReplaceAllString(md, "<$2|$1>")

	// Hide bold behind markers so single-asterisk italics can be rewritten
	// without eating the bold delimiters.
	md = boldExpr.ReplaceAllString(md, boldOpen+"$1"+boldClose)
	md = italicExpr.ReplaceAllString(md, "_$1_")
	md = strings.ReplaceAll(md, boldOpen, "*")
	md = strings.ReplaceAll(md, boldClose, "*")

	md = headingExpr.ReplaceAllString(md, "*$1*")
	md = listExpr.ReplaceAllString(md, "• ")

	for key, code := range saved {
		md = strings.Replace(md, key, code, 1)
	}
	return md
}

// chunk splits text into pieces of at most limit runes, preferring paragraph
// boundaries; a single oversized paragraph is hard-split as a last resort.
func chunk(text string, limit int) []string {
	var chunks []string
	var current string

	for _, paragraph := range strings.Split(text, "\n\n") {
		candidate := paragraph
		if current != "" {
			candidate = current + "\n\n" + paragraph
		}
		if utf8.RuneCountInString(candidate) <= limit {
			current = candidate
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
		if utf8.RuneCountInString(paragraph) > limit {
			chunks = append(chunks, hardSplit(paragraph, limit)...)
		} else {
			current = paragraph
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func hardSplit(s string, limit int) []string {
	runes := []rune(s)
	var parts []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
