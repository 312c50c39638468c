// Package seeder loads an initial lexicon from a tab-separated word list.
// Each line describes one lemma with a single sense; inflected forms and
// examples are left to later manual curation or enrichment.
package seeder

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wortlab/mygerman-backend/internal/domain"
)

// Record is one parsed seed line.
type Record struct {
	Text          string
	PartOfSpeech  domain.PartOfSpeech
	Gender        *domain.Gender
	Level         *string
	FrequencyRank *int
	TranslationsEN []string
	TranslationsRU []string
}

// Line format, tab-separated:
//
//	text	pos	gender	level	rank	en1;en2	ru1;ru2
//
// gender, level, and rank may be empty. Lines starting with '#' and blank
// lines are skipped.
const fieldCount = 7

// Parse reads seed records from r. It fails fast on the first malformed line
// so a bad file never produces a partially wrong lexicon.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("seed line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != fieldCount {
		return Record{}, fmt.Errorf("expected %d tab-separated fields, got %d", fieldCount, len(fields))
	}

	text := domain.NormalizeText(fields[0])
	if text == "" {
		return Record{}, fmt.Errorf("empty lemma text")
	}

	pos := domain.PartOfSpeech(strings.ToUpper(strings.TrimSpace(fields[1])))
	if !pos.IsValid() {
		return Record{}, fmt.Errorf("unknown part of speech %q", fields[1])
	}

	rec := Record{Text: text, PartOfSpeech: pos}

	if g := strings.TrimSpace(fields[2]); g != "" {
		gender := domain.Gender(strings.ToUpper(g))
		if !gender.IsValid() {
			return Record{}, fmt.Errorf("unknown gender %q", g)
		}
		if pos != domain.PartOfSpeechNoun {
			return Record{}, fmt.Errorf("gender given for non-noun %q", text)
		}
		rec.Gender = &gender
	}

	if lvl := strings.TrimSpace(fields[3]); lvl != "" {
		level := strings.ToUpper(lvl)
		rec.Level = &level
	}

	if rank := strings.TrimSpace(fields[4]); rank != "" {
		n, err := strconv.Atoi(rank)
		if err != nil || n < 1 {
			return Record{}, fmt.Errorf("invalid frequency rank %q", rank)
		}
		rec.FrequencyRank = &n
	}

	rec.TranslationsEN = splitTranslations(fields[5])
	rec.TranslationsRU = splitTranslations(fields[6])
	if len(rec.TranslationsEN) == 0 && len(rec.TranslationsRU) == 0 {
		return Record{}, fmt.Errorf("no translations for %q", text)
	}

	return rec, nil
}

func splitTranslations(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ToLemma converts a seed record into a persistable lemma tree with seed
// provenance.
func (rec Record) ToLemma() *domain.Lemma {
	sense := domain.Sense{
		PartOfSpeech: rec.PartOfSpeech,
		Gender:       rec.Gender,
		Source:       domain.ProvenanceSeed,
		Position:     0,
	}

	pos := 0
	for _, t := range rec.TranslationsEN {
		sense.Translations = append(sense.Translations, domain.Translation{
			Lang: "en", Text: t, Source: domain.ProvenanceSeed, Position: pos,
		})
		pos++
	}
	for _, t := range rec.TranslationsRU {
		sense.Translations = append(sense.Translations, domain.Translation{
			Lang: "ru", Text: t, Source: domain.ProvenanceSeed, Position: pos,
		})
		pos++
	}

	return &domain.Lemma{
		Text:          rec.Text,
		Level:         rec.Level,
		FrequencyRank: rec.FrequencyRank,
		Source:        domain.ProvenanceSeed,
		Senses:        []domain.Sense{sense},
	}
}
