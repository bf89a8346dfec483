package parse

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// commaToken stands in for commas inside quoted text so the later
// comma-split cannot break a quoted sentence in two. It is restored per
// sentence before action parsing.
const commaToken = "[comma]"

var lowercaser = cases.Lower(language.Und)

// multiWordKeywords lists every phrase that is collapsed into a single
// underscore-joined token so later whitespace splitting treats it
// atomically. Applied in table order; the order resolves overlaps such as
// "tell any web" before "tell any".
var multiWordKeywords = []string{
	"any part touches",
	"any part consumed",
	"any part hitting",
	"any part blown at",
	"any part pointed at",
	"any part looked at",
	"play url",
	"trigger let go",
	"neared by",
	"tell nearby",
	"tell any web",
	"tell any",
	"tell body",
	"tell first of any",
	"tell web",
	"told by nearby",
	"told by any",
	"told by body",
	"send nearby to",
	"send nearby onto",
	"send one nearby to",
	"send one nearby onto",
	"send all to",
	"send all onto",
	"call me",
	"talked to",
	"talked from",
	"pointed at",
	"looked at",
	"turned around",
	"high speed",
	"end loop",
	"let go",
	"blown at",
	"walked into",
	"someone new in vicinity",
	"someone in vicinity",
	"turn thing",
	"turn sub-thing",
	"stop all parts face someone",
	"stop all parts face up",
	"stop all parts face empty hand",
	"stop all parts face nearest",
	"stop all parts face view",
	"all parts face someone else",
	"all parts face someone",
	"all parts face up",
	"all parts face empty hand while held",
	"all parts face empty hand",
	"all parts face nearest",
	"all parts face view",
	"become untweened",
	"become unsoftened",
	"become soft start",
	"become soft end",
	"become stopped",
	"emit gravity-free",
	"destroy all parts",
	"destroy nearby",
	"give haptic feedback",
	"propel forward",
	"rotate forward",
	"disallow any person size",
	"disallow emitted climbing",
	"disallow emitted transporting",
	"disallow invisibility",
	"disallow highlighting",
	"disallow amplified speech",
	"disallow any destruction",
	"disallow web browsing",
	"disallow untargeted attract and repel",
	"disallow build animations",
	"allow any person size",
	"allow emitted climbing",
	"allow emitted transporting",
	"allow invisibility",
	"allow highlighting",
	"allow amplified speech",
	"allow any destruction",
	"allow web browsing",
	"allow untargeted attract and repel",
	"allow build animations",
	"show slideshow controls",
	"show camera controls",
	"show video controls",
	"show name tags",
	"show video",
	"show board",
	"show thread",
	"show areas",
	"show web",
	"show inventory",
	"show chat keyboard",
	"show line",
	"go to inventory page",
	"touch ends",
	"set light intensity",
	"set light range",
	"set light cone size",
	"set constant rotation to",
	"add crumbles for all parts",
	"set snap angles to",
	"set run speed",
	"set jump speed",
	"set slidiness",
	"add crumbles",
	"do creation part",
	"do all creation parts",
	"material transparent glossy metallic",
	"material very transparent glossy",
	"material slightly transparent",
	"material transparent glossy",
	"material very transparent",
	"material bright metallic",
	"material very metallic",
	"material dark metallic",
	"material transparent texture",
	"material transparent",
	"material metallic",
	"material default",
	"material plastic",
	"material unshiny",
	"material glow",
	"fire with alarm",
	"filling with air",
	"set speed",
	"add speed",
	"multiply speed",
	"change head to",
	"change heads to",
	"align to surface",
	"resize nearby to",
	"stream to",
	"stream stop",
	"set voice",
	"hears anywhere",
	"play track loop",
	"play track",
	"set camera position to",
	"set camera following to",
	"set camera",
	"insert state",
	"remove state",
	"when any state",
	"set gravity to",
	"reset area",
	"reset persons",
	"reset position",
	"reset rotation",
	"reset body",
	"reset legs to default",
	"reset legs to body default",
	"destroyed restores",
	"trail start",
	"trail end",
	"set area visibility to",
	"enable setting",
	"disable setting",
	"set person as authority",
	"set quest achieve",
	"set quest unachieve",
	"set quest remove",
	"set quest",
	"set attract",
	"set repel",
}

// legacyRewrites is the fixed table of compatibility phrase
// substitutions, applied in order before keyword collapsing. They rewrite
// historical synonyms and deprecated dialog names without mutating stored
// script text.
var legacyRewrites = [][2]string{
	{", then ", ", "},
	{",then ", ","},
	{"turn all parts", "all parts turn"},
	{"when any part touched ", "when any part touches "},
	{"when any state touched ", "when any state touches "},
	{" send nearby one ", " send one nearby "},
	{" set visibility to ", " set area visibility to "},
	{"dialog me opened", "dialog own profile opened"},
	{"dialog me closed", "dialog own profile closed"},
	{"body dialog board", "body dialog forum"},

	// A quoted "when touched" inside a type action must survive the
	// touched->touches rewrite, so it is shielded and unshielded around it.
	{`type "when touched`, `type "when _touched`},
	{"when touched ", "when touches "},
	{`type "when _touched`, `type "when touched`},

	{"when hit ", "when hitting "},
	{"when any part hit ", "when any part hitting "},
	{"send nearby to area ", "send nearby to "},
}

// Normalize canonicalizes one raw script line for the given object format
// version. Pure function of its inputs; normalizing an already-normalized
// line is a no-op.
func Normalize(line string, version int) string {
	// Video references and web URLs are case-sensitive and must survive.
	if !strings.Contains(line, "[youtube:") && !strings.Contains(line, "show web") {
		line = lowercaser.String(line)
	}
	line = strings.TrimSpace(line)

	for _, sub := range legacyRewrites {
		line = strings.ReplaceAll(line, sub[0], sub[1])
	}

	for _, phrase := range multiWordKeywords {
		line = collapseKeyword(line, phrase)
	}

	// "tell in front" only became a keyword in format version 8; older
	// scripts may legitimately contain the words as tell payload.
	if version >= 8 {
		line = collapseKeyword(line, "tell in front")
		line = collapseKeyword(line, "tell first in front")
	}

	if strings.Contains(line, " then say ") {
		line = strings.ReplaceAll(line, ",", commaToken)
	}

	return line
}

// collapseKeyword joins a multi-word phrase into its single-token form:
// spaces and dashes become underscores, apostrophes are dropped.
func collapseKeyword(s, phrase string) string {
	joined := strings.ReplaceAll(phrase, " ", "_")
	joined = strings.ReplaceAll(joined, "-", "_")
	joined = strings.ReplaceAll(joined, "'", "")
	return strings.ReplaceAll(s, phrase, joined)
}

// escapeCommasInQuotes replaces commas inside double quotes with the
// comma placeholder, so the sentence split cannot cut a quoted payload.
func escapeCommasInQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inQuotes := false
	for _, c := range s {
		if c == '"' {
			inQuotes = !inQuotes
		}
		if inQuotes && c == ',' {
			b.WriteString(commaToken)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}
