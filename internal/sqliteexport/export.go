// Package sqliteexport writes a built loot model into a SQLite database so
// that reports can be produced with plain SQL.
package sqliteexport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
	"github.com/specialistvlad/lootgraph/internal/store"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// schema is recreated on every export; an export is a full snapshot.
var schema = []string{
	`DROP TABLE IF EXISTS diagnostics`,
	`DROP TABLE IF EXISTS item_instances`,
	`DROP TABLE IF EXISTS items`,
	`DROP TABLE IF EXISTS group_references`,
	`DROP TABLE IF EXISTS groups`,
	`DROP TABLE IF EXISTS template_levels`,
	`DROP TABLE IF EXISTS templates`,
	`CREATE TABLE templates (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL
	)`,
	`CREATE TABLE template_levels (
		template TEXT NOT NULL REFERENCES templates(name),
		position INTEGER NOT NULL,
		level TEXT NOT NULL,
		level_low INTEGER,
		level_high INTEGER,
		prob TEXT NOT NULL,
		PRIMARY KEY (template, position)
	)`,
	`CREATE TABLE groups (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		count TEXT,
		count_low INTEGER,
		count_high INTEGER,
		count_all INTEGER NOT NULL DEFAULT 0,
		count_fixed INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE group_references (
		parent TEXT NOT NULL REFERENCES groups(name),
		position INTEGER NOT NULL,
		child TEXT NOT NULL REFERENCES groups(name),
		count TEXT,
		prob TEXT,
		prob_template TEXT,
		force_prob INTEGER,
		prob_source TEXT NOT NULL,
		PRIMARY KEY (parent, position)
	)`,
	`CREATE TABLE items (
		name TEXT PRIMARY KEY,
		instances INTEGER NOT NULL
	)`,
	`CREATE TABLE item_instances (
		item TEXT NOT NULL REFERENCES items(name),
		grp TEXT NOT NULL REFERENCES groups(name),
		position INTEGER NOT NULL,
		count TEXT,
		prob TEXT,
		prob_template TEXT,
		force_prob INTEGER,
		prob_source TEXT NOT NULL,
		quality TEXT,
		quality_template TEXT,
		PRIMARY KEY (grp, position)
	)`,
	`CREATE TABLE diagnostics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reason TEXT NOT NULL,
		grp TEXT,
		entry INTEGER,
		name TEXT,
		detail TEXT
	)`,
}

// Exporter writes snapshots to one SQLite file.
type Exporter struct {
	db   *sql.DB
	path string
}

// Open creates (or truncates the tables of) the database at path.
func Open(path string) (*Exporter, error) {
	if path == "" {
		return nil, errors.New("sqlite export path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Exporter{db: db, path: path}, nil
}

// Close releases the database handle.
func (e *Exporter) Close() error {
	return e.db.Close()
}

// DB exposes the handle for read-back queries.
func (e *Exporter) DB() *sql.DB {
	return e.db
}

// Export replaces the database contents with the model held by r, in one
// transaction.
func (e *Exporter) Export(ctx context.Context, r store.Reader) (retErr error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Exporting loot model to SQLite.", "path", e.path)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := writeTemplates(ctx, tx, r.Templates()); err != nil {
		return err
	}
	if err := writeGroups(ctx, tx, r.Groups()); err != nil {
		return err
	}
	if err := writeItems(ctx, tx, r.Items()); err != nil {
		return err
	}
	if err := writeDiagnostics(ctx, tx, r.Diagnostics()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	stats := r.Stats()
	logger.Info("Loot model exported to SQLite.",
		"path", e.path,
		"groups", stats.Groups,
		"items", stats.Items,
	)
	return nil
}

func writeTemplates(ctx context.Context, tx *sql.Tx, templates []*loot.ProbTemplate) error {
	for _, t := range templates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO templates (name, kind) VALUES (?, ?)`,
			t.Name, t.Kind.String(),
		); err != nil {
			return fmt.Errorf("insert template %q: %w", t.Name, err)
		}
		for i, lvl := range t.Levels {
			// Unparseable levels keep their text with NULL bounds.
			var low, high sql.NullInt64
			if rng, err := lvl.Range(); err == nil {
				low, high, _ = countColumns(rng)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO template_levels (template, position, level, level_low, level_high, prob) VALUES (?, ?, ?, ?, ?, ?)`,
				t.Name, i, lvl.Level, low, high, lvl.Prob.String(),
			); err != nil {
				return fmt.Errorf("insert template %q level %d: %w", t.Name, i, err)
			}
		}
	}
	return nil
}

func writeGroups(ctx context.Context, tx *sql.Tx, groups []*loot.Group) error {
	// Every group row must exist before references point at it.
	for _, g := range groups {
		low, high, all := countColumns(g.Count)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO groups (name, kind, count, count_low, count_high, count_all, count_fixed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.Name, g.Kind.String(), nullString(g.Count.String()), low, high, all, g.Count.Fixed(),
		); err != nil {
			return fmt.Errorf("insert group %q: %w", g.Name, err)
		}
	}
	for _, g := range groups {
		for _, ref := range g.GroupReferences {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO group_references (parent, position, child, count, prob, prob_template, force_prob, prob_source)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				g.Name, ref.Index, ref.Group.Name, nullString(ref.Count.String()),
				decimalColumn(ref.Prob), templateColumn(ref.Template), boolColumn(ref.ForceProb),
				ref.Source().String(),
			); err != nil {
				return fmt.Errorf("insert reference %q -> %q: %w", g.Name, ref.Group.Name, err)
			}
		}
	}
	return nil
}

func writeItems(ctx context.Context, tx *sql.Tx, items []*loot.Item) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (name, instances) VALUES (?, ?)`,
			it.Name, len(it.Instances),
		); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Name, err)
		}
		for _, inst := range it.Instances {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_instances (item, grp, position, count, prob, prob_template, force_prob, prob_source, quality, quality_template)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				it.Name, inst.Group.Name, inst.Index, nullString(inst.Count.String()),
				decimalColumn(inst.Prob), templateColumn(inst.Template), boolColumn(inst.ForceProb),
				inst.Source().String(), nullString(inst.Quality.String()), templateColumn(inst.QualityTemplate),
			); err != nil {
				return fmt.Errorf("insert instance of %q in %q: %w", it.Name, inst.Group.Name, err)
			}
		}
	}
	return nil
}

func writeDiagnostics(ctx context.Context, tx *sql.Tx, diags []store.Diagnostic) error {
	for _, d := range diags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (reason, grp, entry, name, detail) VALUES (?, ?, ?, ?, ?)`,
			string(d.Reason), nullString(d.Group), d.Entry, d.Name, d.Detail,
		); err != nil {
			return fmt.Errorf("insert diagnostic: %w", err)
		}
	}
	return nil
}

func countColumns(c *loot.Count) (low, high sql.NullInt64, all bool) {
	if c == nil {
		return low, high, false
	}
	return sql.NullInt64{Int64: int64(c.Low), Valid: true}, sql.NullInt64{Int64: int64(c.High), Valid: true}, c.All
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func decimalColumn(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func templateColumn(t *loot.ProbTemplate) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Name, Valid: true}
}

func boolColumn(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
