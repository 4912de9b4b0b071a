// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blog

import (
	"strings"

	"github.com/pidlozhevich/lawsite/internal/notion"
)

// wordsPerMinute is the assumed reading speed for the read-time estimate.
const wordsPerMinute = 200

// WordCount estimates the number of words in a block sequence. Blocks that
// carry rich text contribute their whitespace-separated tokens; images,
// dividers and other text-free blocks contribute zero. This is an
// approximation, not a typographic word count: splitting is on whitespace
// only, which keeps the count stable for Cyrillic and other multi-byte text.
func WordCount(blocks []notion.Block) int {
	count := 0
	for i := range blocks {
		var sb strings.Builder
		for _, rt := range blocks[i].RichTexts() {
			sb.WriteString(rt.PlainText)
		}
		count += len(strings.Fields(sb.String()))
	}
	return count
}

// ReadTime converts a word count into whole minutes of reading, never less
// than one minute.
func ReadTime(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
