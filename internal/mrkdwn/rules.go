package mrkdwn

import "regexp"

const (
	boldOpen  = "\x00B\x00"
	boldClose = "\x00/B\x00"
)

var (
	codeBlockExpr = regexp.MustCompile("(?s)```.*?```")
	linkExpr      = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	boldExpr      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicExpr    = regexp.MustCompile(`\*([^*\n]+)\*`)
	headingExpr   = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+(.*)$`)
	listExpr      = regexp.MustCompile(`(?m)^[ \t]*[-*][ \t]+`)
)
