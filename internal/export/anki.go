// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package export

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mtreilly/arc-cards/internal/deck"
)

// fieldSep separates note fields inside notes.flds.
const fieldSep = "\x1f"

const (
	ankiDeckID  int64 = 1
	ankiModelID int64 = 1
)

// AnkiExporter writes .apkg packages: a zip holding a SQLite collection
// (collection.anki2) and an empty media map.
type AnkiExporter struct {
	deckName string
	now      func() time.Time
}

// NewAnkiExporter names the deck cards are filed under.
func NewAnkiExporter(deckName string, now func() time.Time) *AnkiExporter {
	if deckName == "" {
		deckName = "Arc Cards"
	}
	if now == nil {
		now = time.Now
	}
	return &AnkiExporter{deckName: deckName, now: now}
}

// Export builds the package for cards and streams it to w.
func (e *AnkiExporter) Export(cards deck.Collection, w io.Writer) error {
	tmpDir, err := os.MkdirTemp("", "arc-cards-anki-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "collection.anki2")
	if err := e.buildCollection(dbPath, cards); err != nil {
		return fmt.Errorf("build collection: %w", err)
	}

	zw := zip.NewWriter(w)
	if err := addFile(zw, dbPath, "collection.anki2"); err != nil {
		zw.Close()
		return fmt.Errorf("add collection: %w", err)
	}
	media, err := zw.Create("media")
	if err != nil {
		zw.Close()
		return fmt.Errorf("add media: %w", err)
	}
	if _, err := io.WriteString(media, "{}"); err != nil {
		zw.Close()
		return fmt.Errorf("add media: %w", err)
	}
	return zw.Close()
}

const ankiSchema = `
CREATE TABLE col (
	id INTEGER PRIMARY KEY, crt INTEGER NOT NULL, mod INTEGER NOT NULL,
	scm INTEGER NOT NULL, ver INTEGER NOT NULL, dty INTEGER NOT NULL,
	usn INTEGER NOT NULL, ls INTEGER NOT NULL, conf TEXT NOT NULL,
	models TEXT NOT NULL, decks TEXT NOT NULL, dconf TEXT NOT NULL, tags TEXT NOT NULL
);
CREATE TABLE notes (
	id INTEGER PRIMARY KEY, guid TEXT NOT NULL, mid INTEGER NOT NULL,
	mod INTEGER NOT NULL, usn INTEGER NOT NULL, tags TEXT NOT NULL,
	flds TEXT NOT NULL, sfld TEXT NOT NULL, csum INTEGER NOT NULL,
	flags INTEGER NOT NULL, data TEXT NOT NULL
);
CREATE TABLE cards (
	id INTEGER PRIMARY KEY, nid INTEGER NOT NULL, did INTEGER NOT NULL,
	ord INTEGER NOT NULL, mod INTEGER NOT NULL, usn INTEGER NOT NULL,
	type INTEGER NOT NULL, queue INTEGER NOT NULL, due INTEGER NOT NULL,
	ivl INTEGER NOT NULL, factor INTEGER NOT NULL, reps INTEGER NOT NULL,
	lapses INTEGER NOT NULL, left INTEGER NOT NULL, odue INTEGER NOT NULL,
	odid INTEGER NOT NULL, flags INTEGER NOT NULL, data TEXT NOT NULL
);
CREATE TABLE revlog (
	id INTEGER PRIMARY KEY, cid INTEGER NOT NULL, usn INTEGER NOT NULL,
	ease INTEGER NOT NULL, ivl INTEGER NOT NULL, lastIvl INTEGER NOT NULL,
	factor INTEGER NOT NULL, time INTEGER NOT NULL, type INTEGER NOT NULL
);
CREATE TABLE graves (usn INTEGER NOT NULL, oid INTEGER NOT NULL, type INTEGER NOT NULL);
CREATE INDEX ix_notes_csum ON notes (csum);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_cid ON revlog (cid);
`

type ankiTemplate struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

type ankiField struct {
	Name  string   `json:"name"`
	Ord   int      `json:"ord"`
	Font  string   `json:"font"`
	Size  int      `json:"size"`
	Media []string `json:"media"`
}

type ankiModel struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Type  int            `json:"type"`
	Mod   int64          `json:"mod"`
	Usn   int            `json:"usn"`
	Sortf int            `json:"sortf"`
	Did   int64          `json:"did"`
	Tmpls []ankiTemplate `json:"tmpls"`
	Flds  []ankiField    `json:"flds"`
	CSS   string         `json:"css"`
	Req   [][]any        `json:"req"`
	Tags  []string       `json:"tags"`
}

type ankiDeck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Mod       int64  `json:"mod"`
	Usn       int    `json:"usn"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	LrnToday  [2]int `json:"lrnToday"`
	TimeToday [2]int `json:"timeToday"`
}

type ankiDeckConf struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Mod      int64          `json:"mod"`
	Usn      int            `json:"usn"`
	MaxTaken int            `json:"maxTaken"`
	New      map[string]any `json:"new"`
	Rev      map[string]any `json:"rev"`
	Lapse    map[string]any `json:"lapse"`
}

func (e *AnkiExporter) collectionRow(now int64) (conf, models, decks, dconf []byte, err error) {
	id := strconv.FormatInt(ankiModelID, 10)
	did := strconv.FormatInt(ankiDeckID, 10)

	conf, err = json.Marshal(map[string]any{"curModel": id, "activeDecks": []int64{ankiDeckID}, "curDeck": ankiDeckID})
	if err != nil {
		return
	}
	models, err = json.Marshal(map[string]ankiModel{id: {
		ID: ankiModelID, Name: "Basic", Mod: now / 1000, Usn: -1, Did: ankiDeckID,
		Tmpls: []ankiTemplate{{
			Name: "Card 1",
			Qfmt: "{{Front}}",
			Afmt: "{{FrontSide}}<hr id=\"answer\">{{Back}}",
		}},
		Flds: []ankiField{
			{Name: "Front", Ord: 0, Font: "Arial", Size: 20, Media: []string{}},
			{Name: "Back", Ord: 1, Font: "Arial", Size: 20, Media: []string{}},
		},
		CSS:  ".card { font-family: arial; font-size: 20px; text-align: center; }",
		Req:  [][]any{{0, "all", []int{0}}},
		Tags: []string{},
	}})
	if err != nil {
		return
	}
	decks, err = json.Marshal(map[string]ankiDeck{did: {
		ID: ankiDeckID, Name: e.deckName, Mod: now / 1000, Usn: -1, Conf: 1,
	}})
	if err != nil {
		return
	}
	dconf, err = json.Marshal(map[string]ankiDeckConf{"1": {
		ID: 1, Name: "Default", Mod: now / 1000, Usn: -1, MaxTaken: 60,
		New:   map[string]any{"delays": []float64{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500, "order": 1, "perDay": 20},
		Rev:   map[string]any{"perDay": 200, "ivlFct": 1, "maxIvl": 36500},
		Lapse: map[string]any{"delays": []float64{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0},
	}})
	return
}

func (e *AnkiExporter) buildCollection(dbPath string, cards deck.Collection) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(ankiSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	now := e.now().UnixMilli()
	conf, models, decks, dconf, err := e.collectionRow(now)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if _, err := db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now/1000, now, now, string(conf), string(models), string(decks), string(dconf),
	); err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, card := range cards {
		// Anki ids are millisecond timestamps; offset each note so they stay unique.
		noteID := now + int64(i)*2
		fields := card.Question + fieldSep + card.Answer

		if _, err := tx.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, card.ID, ankiModelID, now/1000, fields, card.Question, checksum(card.Question),
		); err != nil {
			return fmt.Errorf("insert note %s: %w", card.ID, err)
		}
		// New cards are due in collection order.
		if _, err := tx.Exec(
			`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
			 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			noteID+1, noteID, ankiDeckID, now/1000, i+1,
		); err != nil {
			return fmt.Errorf("insert card %s: %w", card.ID, err)
		}
	}
	return tx.Commit()
}

// checksum is Anki's note checksum: the first 32 bits of the SHA-1 of the
// sort field.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
