// Package extract parses classified script text into weapon records and
// texture/model reference sets. All outputs are fresh collections; nothing
// here touches shared state.
package extract

import (
	"regexp"
	"sort"

	"github.com/gmodtools/swepscan/pkg/models"
)

// swepProperty matches SWEP.<Key> = "string" | 'string' | number
// assignments. Keys are matched case-sensitively against the recognized
// vocabulary below.
var swepProperty = regexp.MustCompile(`SWEP\.([A-Za-z0-9_]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([0-9]+))`)

// registerCall matches weapons.Register(<table>, "<class>").
var registerCall = regexp.MustCompile(`(?i)weapons\.Register\(\s*([A-Za-z0-9_.]+)\s*,\s*["']([^"']+)["']`)

// tableProperty matches <Key> = value entries inside a table literal.
var tableProperty = regexp.MustCompile(`([A-Za-z0-9_]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([0-9]+)|(true|false))`)

// Result holds everything recovered from one piece of text.
type Result struct {
	Weapons  map[string]*models.WeaponRecord
	Textures []string
	Models   []string
}

// Extract parses text that already passed classification. source is the
// originating file path; its stem becomes the class identifier for
// table-style definitions. Texture and model harvesting runs regardless of
// whether a full weapon record is recovered.
func Extract(text, source string) *Result {
	res := &Result{
		Weapons: make(map[string]*models.WeaponRecord),
	}

	textures := newPathSet()
	modelRefs := newPathSet()

	harvestTextures(text, textures)
	harvestModels(text, modelRefs)

	gamemode := func(base, category string) models.Gamemode {
		return InferGamemode(base, category, text)
	}

	// Table-assignment style: SWEP.Key = value, class from the file stem.
	if rec := extractTableStyle(text, source); rec != nil {
		rec.Gamemode = gamemode(rec.Base, rec.Category)
		addModelFields(rec, modelRefs)
		res.Weapons[rec.Class] = rec
	}

	// Registration-call style: weapons.Register(tbl, "class").
	for _, m := range registerCall.FindAllStringSubmatch(text, -1) {
		tableRef, class := m[1], m[2]
		if class == "" {
			continue
		}

		rec := &models.WeaponRecord{
			Class:        class,
			Source:       source,
			Registration: models.RegistrationCall,
		}

		// If the registered table's definition appears in the same text,
		// merge its properties in.
		if body := findTableBody(text, tableRef); body != "" {
			rec.Merge(recordFromTable(body, class, source))
			harvestTextures(body, textures)
			harvestModels(body, modelRefs)
		}

		rec.Gamemode = gamemode(rec.Base, rec.Category)
		addModelFields(rec, modelRefs)

		if existing, ok := res.Weapons[class]; ok {
			existing.Merge(rec)
		} else {
			res.Weapons[class] = rec
		}
	}

	res.Textures = textures.sorted()
	res.Models = modelRefs.sorted()
	return res
}

// extractTableStyle scans SWEP.<Key> assignments and builds a record when at
// least one recognized property is present.
func extractTableStyle(text, source string) *models.WeaponRecord {
	rec := &models.WeaponRecord{
		Class:        models.Stem(source),
		Source:       source,
		Registration: models.RegistrationTable,
	}

	found := false
	for _, m := range swepProperty.FindAllStringSubmatch(text, -1) {
		key := m[1]
		value := firstNonEmpty(m[2], m[3], m[4])
		if setRecordField(rec, key, value) {
			found = true
		}
	}

	if !found {
		return nil
	}
	return rec
}

// recordFromTable parses a table literal body into a record.
func recordFromTable(body, class, source string) *models.WeaponRecord {
	rec := &models.WeaponRecord{
		Class:  class,
		Source: source,
	}
	for _, m := range tableProperty.FindAllStringSubmatch(body, -1) {
		setRecordField(rec, m[1], firstNonEmpty(m[2], m[3], m[4], m[5]))
	}
	return rec
}

// setRecordField assigns a recognized property, reporting whether the key
// was part of the vocabulary. Keys are case-sensitive.
func setRecordField(rec *models.WeaponRecord, key, value string) bool {
	if value == "" {
		return false
	}
	switch key {
	case "PrintName":
		rec.PrintName = value
	case "Author":
		rec.Author = value
	case "Category":
		rec.Category = value
	case "Base":
		rec.Base = value
	case "Slot":
		rec.Slot = value
	case "SlotPos":
		rec.SlotPos = value
	case "ViewModel":
		rec.ViewModel = NormalizeModelPath(value)
	case "WorldModel":
		rec.WorldModel = NormalizeModelPath(value)
	default:
		return false
	}
	return true
}

// findTableBody locates `ref = { ... }` for a registered table reference.
// The body match is non-greedy and stops at the first closing brace, which
// is enough for the flat property tables weapon scripts use.
func findTableBody(text, ref string) string {
	pattern := regexp.MustCompile(regexp.QuoteMeta(ref) + `\s*=\s*\{([^}]*)\}`)
	if m := pattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// addModelFields feeds a record's model fields into the reference set.
func addModelFields(rec *models.WeaponRecord, set *pathSet) {
	if rec.ViewModel != "" {
		set.add(rec.ViewModel)
	}
	if rec.WorldModel != "" {
		set.add(rec.WorldModel)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// pathSet is a dedup helper for harvested paths.
type pathSet struct {
	seen map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(path string) {
	if path != "" {
		s.seen[path] = struct{}{}
	}
}

func (s *pathSet) sorted() []string {
	out := make([]string, 0, len(s.seen))
	for p := range s.seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
