package extract

import "regexp"

// bookBlock matches one ranked best-seller entry: a rank marker line, an
// image+title+product-link line, an author line, and a trailing price line.
// Blocks that deviate from this shape in any way are skipped whole; a partial
// candidate is never emitted.
var bookBlock = regexp.MustCompile(
	`#(\d+)[^\S\n]*\n` + // rank marker
		`\[!\[([^\]]*)\]\(([^)]*)\)\]\((https://www\.amazon\.com/[^)]*)\)\n` + // [![title](image)](product)
		`([^\n]+)\n` + // author
		`(?:[^\n]*)\n`, // price or trailing line, content unused
)

// Books scans markdown for ranked book blocks and returns the candidates in
// source order.
func Books(markdown string) []BookCandidate {
	matches := bookBlock.FindAllStringSubmatch(markdown, -1)
	out := make([]BookCandidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, BookCandidate{
			Rank:       m[1],
			Title:      m[2],
			ImageURL:   m[3],
			ProductURL: m[4],
			Author:     m[5],
		})
	}
	return out
}
