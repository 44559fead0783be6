package manifest

import (
	"strings"

	"github.com/goliatone/go-manifest/pkg/value"
)

// EntityKind names the store a referenced identifier belongs to.
type EntityKind string

const (
	EntityContainer EntityKind = "container"
	EntityCompound  EntityKind = "compound"
)

// AliquotContainerKey is the field of an aliquot value that references its
// container.
const AliquotContainerKey = "containerId"

// EntityRef is one identifier found in a value tree together with the kind of
// entity it points at.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// EntityIDs walks schema and values in lock-step and returns every referenced
// container and compound identifier in first-seen order, without duplicates.
// Absent and blank entries are skipped.
func EntityIDs(schema Schema, values value.Value) []string {
	refs := collectRefs(schema, values)
	seen := make(map[string]struct{}, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}
	return ids
}

// EntityRefs is EntityIDs with the entity kind kept, de-duplicated on the
// (kind, id) pair.
func EntityRefs(schema Schema, values value.Value) []EntityRef {
	refs := collectRefs(schema, values)
	seen := make(map[EntityRef]struct{}, len(refs))
	out := make([]EntityRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

func collectRefs(schema Schema, values value.Value) []EntityRef {
	var refs []EntityRef
	for _, f := range schema.Fields() {
		refs = appendRefs(refs, f.Type, values.Get(f.Name))
	}
	return refs
}

func appendRefs(refs []EntityRef, td TypeDescription, v value.Value) []EntityRef {
	if v.IsAbsent() {
		return refs
	}
	switch td.Kind.Class() {
	case ClassEntity:
		if ref, ok := entityRef(td.Kind, v); ok {
			refs = append(refs, ref)
		}
	case ClassEntityList, ClassAliquotListList:
		element := td.WithKind(td.Kind.Singular())
		for _, item := range v.Items() {
			refs = appendRefs(refs, element, item)
		}
	case ClassGroup:
		refs = append(refs, collectRefs(td.Inputs, v)...)
	case ClassGroupList:
		for _, item := range v.Items() {
			refs = append(refs, collectRefs(td.Inputs, item)...)
		}
	case ClassGroupChoice:
		if opt, ok := selectedOption(td, v); ok {
			refs = append(refs, collectRefs(opt.Inputs, v.Get("inputs").Get(opt.Value))...)
		}
	}
	return refs
}

func entityRef(kind Kind, v value.Value) (EntityRef, bool) {
	var (
		raw    value.Value
		entity EntityKind
	)
	switch kind {
	case KindContainer:
		raw, entity = v, EntityContainer
	case KindCompound:
		raw, entity = v, EntityCompound
	case KindAliquot:
		raw, entity = v.Get(AliquotContainerKey), EntityContainer
	default:
		return EntityRef{}, false
	}
	id, ok := raw.Text()
	if !ok || strings.TrimSpace(id) == "" {
		return EntityRef{}, false
	}
	return EntityRef{Kind: entity, ID: id}, true
}
