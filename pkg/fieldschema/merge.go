package fieldschema

// Merge combines partial field schemas into a new FieldSchema.
// Layers are applied in order, so a later layer wins over an earlier one for every
// leaf it sets. A leaf is set when it is a non-nil pointer, slice or map, or a
// non-empty string. Unset leaves never erase values set by earlier layers.
//
// Per field precedence:
//   - Type, Optional, CanRead, CanCreate, CanUpdate: replaced by the last layer setting them.
//   - Label, Description, Control: replaced by the last non-empty value.
//   - Form: PreviewFromValue is replaced by the last layer setting it, Props are merged like Extra.
//   - ResolveAs: FieldName, Type and Description are replaced by the last non-empty value,
//     AddOriginalField stays true once any layer sets it.
//   - Extra: merged key by key, nested maps are merged recursively.
//
// Merge never mutates its arguments. Nil layers are skipped.
func Merge(layers ...*FieldSchema) *FieldSchema {
	out := &FieldSchema{}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		mergeInto(out, layer.Clone())
	}
	return out
}

func mergeInto(dst, src *FieldSchema) {
	if src.Type != nil {
		dst.Type = src.Type
	}
	mergeString(&dst.Label, src.Label)
	mergeString(&dst.Description, src.Description)
	mergeString(&dst.Control, src.Control)
	if src.Optional != nil {
		dst.Optional = src.Optional
	}
	if src.CanRead != nil {
		dst.CanRead = src.CanRead
	}
	if src.CanCreate != nil {
		dst.CanCreate = src.CanCreate
	}
	if src.CanUpdate != nil {
		dst.CanUpdate = src.CanUpdate
	}

	if src.Form != nil {
		if dst.Form == nil {
			dst.Form = &FormOptions{}
		}
		if src.Form.PreviewFromValue != nil {
			dst.Form.PreviewFromValue = src.Form.PreviewFromValue
		}
		dst.Form.Props = mergeMaps(dst.Form.Props, src.Form.Props)
	}

	if src.ResolveAs != nil {
		if dst.ResolveAs == nil {
			dst.ResolveAs = &ResolveAs{}
		}
		mergeString(&dst.ResolveAs.FieldName, src.ResolveAs.FieldName)
		mergeString(&dst.ResolveAs.Type, src.ResolveAs.Type)
		mergeString(&dst.ResolveAs.Description, src.ResolveAs.Description)
		dst.ResolveAs.AddOriginalField = dst.ResolveAs.AddOriginalField || src.ResolveAs.AddOriginalField
	}

	dst.Extra = mergeMaps(dst.Extra, src.Extra)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeMaps merges src into dst and returns dst. Both maps must be owned by the caller.
func mergeMaps(dst, src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return dst
	}
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for key, value := range src {
		if value == nil {
			continue
		}
		srcNested, srcIsMap := value.(map[string]interface{})
		dstNested, dstIsMap := dst[key].(map[string]interface{})
		if srcIsMap && dstIsMap {
			dst[key] = mergeMaps(dstNested, srcNested)
			continue
		}
		dst[key] = value
	}
	return dst
}
