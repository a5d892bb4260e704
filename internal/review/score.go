/*-------------------------------------------------------------------------
 *
 * score.go
 *    Score extraction from review text
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/review/score.go
 *
 *-------------------------------------------------------------------------
 */

package review

import "regexp"

/* Matches "7/10", "7 / 10", "score: 7", "rated 7", etc. */
var scorePattern = regexp.MustCompile(`(?i)\b(10|[1-9])\s*/\s*10\b|\b(?:score|rating|rated)\s*:?\s*(10|[1-9])\b`)

var bareScorePattern = regexp.MustCompile(`\b(10|[1-9])\b`)

/*
 * ExtractScore pulls the 1-10 score out of provider review text. It
 * prefers explicit "N/10" or "Score: N" forms and falls back to the
 * first standalone integer in range. Returns 0 when no score is found.
 */
func ExtractScore(text string) int {
	if m := scorePattern.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				return atoiScore(g)
			}
		}
	}
	if m := bareScorePattern.FindString(text); m != "" {
		return atoiScore(m)
	}
	return 0
}

func atoiScore(s string) int {
	if s == "10" {
		return 10
	}
	return int(s[0] - '0')
}
