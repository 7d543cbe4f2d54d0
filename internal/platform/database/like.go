package database

import "strings"

// LikeEscape is the escape character used with ContainsPattern, spelled out
// in queries as ESCAPE '!'. It behaves the same on all three backends.
const LikeEscape = '!'

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern turns term into a LIKE pattern matching any value that
// contains it literally.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}
