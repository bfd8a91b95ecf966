package extract

import "regexp"

// movieBlock anchors on a bold title and then scans forward, non-greedily and
// across lines, for the Showtime/Price/Location/Seats Available labels in
// that order. A single pass is made: listings whose labels are reordered or
// interleaved with another listing do not match. Price and seats are captured
// as raw tokens so the normalizer can reject non-numeric values explicitly.
var movieBlock = regexp.MustCompile(
	`(?s)\*\*(.*?)\*\*` +
		`.*?Showtime: (.*?)\n` +
		`.*?Price: (\S+)` +
		`.*?Location: (.*?)\n` +
		`.*?Seats Available: (\S+)`,
)

// Movies scans markdown for movie listings and returns the candidates in
// source order.
func Movies(markdown string) []MovieCandidate {
	matches := movieBlock.FindAllStringSubmatch(markdown, -1)
	out := make([]MovieCandidate, 0, len(matches))
	for _, m := range matches {
		out = append(out, MovieCandidate{
			Title:          m[1],
			ShowTime:       m[2],
			Price:          m[3],
			Location:       m[4],
			SeatsAvailable: m[5],
		})
	}
	return out
}
