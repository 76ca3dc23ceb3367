package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ReferenceResolver holds the tenant-scoped lookup tables preloaded
// at the start of a run. It is read-only after PreloadReferences
// returns and safe for concurrent use. Tables are never refreshed
// mid-run; the update-only pipeline cannot create referenceable
// entities, so a snapshot per run is sufficient.
type ReferenceResolver struct {
	ids   map[string]map[string]int64
	names map[string]map[int64]string
	known map[string][]string
}

// PreloadReferences loads the given reference kinds for one tenant so
// every later lookup is an in-memory map access.
func PreloadReferences(ctx context.Context, store ReferenceStore, tenantID int64, kinds ...string) (*ReferenceResolver, error) {
	r := &ReferenceResolver{
		ids:   make(map[string]map[string]int64),
		names: make(map[string]map[int64]string),
		known: make(map[string][]string),
	}

	for _, kind := range kinds {
		refs, err := store.LoadAll(ctx, tenantID, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", kind, err)
		}

		ids := make(map[string]int64, len(refs))
		names := make(map[int64]string, len(refs))
		known := make([]string, 0, len(refs))
		for _, ref := range refs {
			ids[normalizeKey(ref.Name)] = ref.ID
			names[ref.ID] = ref.Name
			known = append(known, ref.Name)
		}
		sort.Strings(known)

		r.ids[kind] = ids
		r.names[kind] = names
		r.known[kind] = known
	}

	return r, nil
}

// Resolve matches a natural-key name against one table. Matching is
// case-insensitive but exact; reference resolution never guesses.
func (r *ReferenceResolver) Resolve(kind, name string) (int64, bool) {
	table, ok := r.ids[kind]
	if !ok {
		return 0, false
	}
	id, ok := table[normalizeKey(name)]
	return id, ok
}

// NameOf returns the display name for an id, for template sampling.
func (r *ReferenceResolver) NameOf(kind string, id int64) string {
	if table, ok := r.names[kind]; ok {
		return table[id]
	}
	return ""
}

// KnownValues returns the sorted display names of one table, used in
// error messages so the operator can fix the spreadsheet themselves.
func (r *ReferenceResolver) KnownValues(kind string) []string {
	return r.known[kind]
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
