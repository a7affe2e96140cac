package schema

func init() {
	register(KindSchema{
		Name: "PROJECT",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
		},
		Singletons: map[string]SingletonSpec{
			"HEADER": {Keyword: "HEADER", Attr: "header", Block: true, Kind: "HEADER"},
		},
		SingletonOrder: []string{"HEADER"},
		Repeatables: map[string]RepeatableSpec{
			"MODULE": {Keyword: "MODULE", Attr: "module", Kind: "MODULE"},
		},
		RepeatableOrder: []string{"MODULE"},
	})

	register(KindSchema{
		Name: "HEADER",
		Positional: []PositionalField{
			{Attr: "comment", Kind: FString},
		},
		Singletons: map[string]SingletonSpec{
			"VERSION":    {Keyword: "VERSION", Attr: "version", Fields: []FieldKind{FString}},
			"PROJECT_NO": {Keyword: "PROJECT_NO", Attr: "project_no", Fields: []FieldKind{FIdent}},
		},
		SingletonOrder: []string{"VERSION", "PROJECT_NO"},
	})

	register(KindSchema{
		Name: "MODULE",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
		},
		A2ML:   true,
		IfData: true,
		Singletons: map[string]SingletonSpec{
			"MOD_PAR":        {Keyword: "MOD_PAR", Attr: "mod_par", Block: true, Kind: "MOD_PAR"},
			"MOD_COMMON":     {Keyword: "MOD_COMMON", Attr: "mod_common", Block: true, Kind: "MOD_COMMON"},
			"VARIANT_CODING": {Keyword: "VARIANT_CODING", Attr: "variant_coding", Block: true, Kind: "VARIANT_CODING"},
			"FRAME":          {Keyword: "FRAME", Attr: "frame", Block: true, Kind: "FRAME"},
		},
		SingletonOrder: []string{"MOD_PAR", "MOD_COMMON", "VARIANT_CODING", "FRAME"},
		Repeatables: map[string]RepeatableSpec{
			"CHARACTERISTIC":   {Keyword: "CHARACTERISTIC", Attr: "characteristic", Kind: "CHARACTERISTIC"},
			"AXIS_PTS":         {Keyword: "AXIS_PTS", Attr: "axis_pts", Kind: "AXIS_PTS"},
			"MEASUREMENT":      {Keyword: "MEASUREMENT", Attr: "measurement", Kind: "MEASUREMENT"},
			"COMPU_METHOD":     {Keyword: "COMPU_METHOD", Attr: "compu_method", Kind: "COMPU_METHOD"},
			"COMPU_TAB":        {Keyword: "COMPU_TAB", Attr: "compu_tab", Kind: "COMPU_TAB"},
			"COMPU_VTAB":       {Keyword: "COMPU_VTAB", Attr: "compu_vtab", Kind: "COMPU_VTAB"},
			"COMPU_VTAB_RANGE": {Keyword: "COMPU_VTAB_RANGE", Attr: "compu_vtab_range", Kind: "COMPU_VTAB_RANGE"},
			"FUNCTION":         {Keyword: "FUNCTION", Attr: "function", Kind: "FUNCTION"},
			"GROUP":            {Keyword: "GROUP", Attr: "group", Kind: "GROUP"},
			"RECORD_LAYOUT":    {Keyword: "RECORD_LAYOUT", Attr: "record_layout", Kind: "RECORD_LAYOUT"},
			"USER_RIGHTS":      {Keyword: "USER_RIGHTS", Attr: "user_rights", Kind: "USER_RIGHTS"},
			"UNIT":             {Keyword: "UNIT", Attr: "unit", Kind: "UNIT"},
		},
		RepeatableOrder: []string{
			"CHARACTERISTIC", "AXIS_PTS", "MEASUREMENT", "COMPU_METHOD", "COMPU_TAB",
			"COMPU_VTAB", "COMPU_VTAB_RANGE", "FUNCTION", "GROUP", "RECORD_LAYOUT",
			"USER_RIGHTS", "UNIT",
		},
	})

	register(KindSchema{
		Name: "MOD_PAR",
		Positional: []PositionalField{
			{Attr: "comment", Kind: FString},
		},
	})

	register(KindSchema{
		Name: "MOD_COMMON",
		Positional: []PositionalField{
			{Attr: "comment", Kind: FString},
		},
	})

	register(KindSchema{
		Name: "CHARACTERISTIC",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "type", Kind: FIdent},
			{Attr: "address", Kind: FInt},
			{Attr: "deposit", Kind: FIdent},
			{Attr: "max_diff", Kind: FFloat},
			{Attr: "conversion", Kind: FIdent},
			{Attr: "lower_limit", Kind: FFloat},
			{Attr: "upper_limit", Kind: FFloat},
		},
		Singletons: map[string]SingletonSpec{
			"READ_ONLY":       {Keyword: "READ_ONLY", Attr: "read_only", Flag: true},
			"GUARD_RAILS":     {Keyword: "GUARD_RAILS", Attr: "guard_rails", Flag: true},
			"EXTENDED_LIMITS": {Keyword: "EXTENDED_LIMITS", Attr: "extended_limits", Fields: []FieldKind{FFloat, FFloat}},
			"FORMAT":          {Keyword: "FORMAT", Attr: "format", Fields: []FieldKind{FString}},
			"BIT_MASK":        {Keyword: "BIT_MASK", Attr: "bit_mask", Fields: []FieldKind{FInt}},
			"MATRIX_DIM":      {Keyword: "MATRIX_DIM", Attr: "matrix_dim", Fields: []FieldKind{FInt, FInt, FInt}},
		},
		SingletonOrder: []string{"READ_ONLY", "GUARD_RAILS", "EXTENDED_LIMITS", "FORMAT", "BIT_MASK", "MATRIX_DIM"},
	})

	register(KindSchema{
		Name: "AXIS_PTS",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "address", Kind: FInt},
			{Attr: "input_quantity", Kind: FIdent},
			{Attr: "deposit", Kind: FIdent},
			{Attr: "max_diff", Kind: FFloat},
			{Attr: "conversion", Kind: FIdent},
			{Attr: "max_axis_points", Kind: FInt},
			{Attr: "lower_limit", Kind: FFloat},
			{Attr: "upper_limit", Kind: FFloat},
		},
	})

	register(KindSchema{
		Name: "MEASUREMENT",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "datatype", Kind: FIdent},
			{Attr: "conversion", Kind: FIdent},
			{Attr: "resolution", Kind: FInt},
			{Attr: "accuracy", Kind: FFloat},
			{Attr: "lower_limit", Kind: FFloat},
			{Attr: "upper_limit", Kind: FFloat},
		},
		Singletons: map[string]SingletonSpec{
			"READ_WRITE": {Keyword: "READ_WRITE", Attr: "read_write", Flag: true},
			"FORMAT":     {Keyword: "FORMAT", Attr: "format", Fields: []FieldKind{FString}},
			"BIT_MASK":   {Keyword: "BIT_MASK", Attr: "bit_mask", Fields: []FieldKind{FInt}},
			"MATRIX_DIM": {Keyword: "MATRIX_DIM", Attr: "matrix_dim", Fields: []FieldKind{FInt, FInt, FInt}},
		},
		SingletonOrder: []string{"READ_WRITE", "FORMAT", "BIT_MASK", "MATRIX_DIM"},
	})

	register(KindSchema{
		Name: "COMPU_METHOD",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "conversion_type", Kind: FIdent},
			{Attr: "format", Kind: FString},
			{Attr: "unit", Kind: FString},
		},
		Singletons: map[string]SingletonSpec{
			"COEFFS": {
				Keyword:     "COEFFS",
				Attr:        "coeffs",
				Fields:      []FieldKind{FFloat, FFloat, FFloat, FFloat, FFloat, FFloat},
				NamedFields: []string{"a", "b", "c", "d", "e", "f"},
			},
		},
		SingletonOrder: []string{"COEFFS"},
	})

	register(KindSchema{
		Name: "COMPU_TAB",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "conversion_type", Kind: FIdent},
		},
		CountedGroup: &CountedGroup{
			CountAttr: "number_value_pairs",
			GroupAttr: "value_pairs",
			Shape:     []FieldKind{FFloat, FFloat},
		},
	})

	register(KindSchema{
		Name: "COMPU_VTAB",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "conversion_type", Kind: FIdent},
		},
		CountedGroup: &CountedGroup{
			CountAttr: "number_value_pairs",
			GroupAttr: "value_pairs",
			Shape:     []FieldKind{FFloat, FString},
		},
	})

	register(KindSchema{
		Name: "COMPU_VTAB_RANGE",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
		},
		CountedGroup: &CountedGroup{
			CountAttr: "number_value_triples",
			GroupAttr: "value_triples",
			Shape:     []FieldKind{FFloat, FFloat, FString},
		},
	})

	register(KindSchema{
		Name: "FUNCTION",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
		},
	})

	register(KindSchema{
		Name: "GROUP",
		Positional: []PositionalField{
			{Attr: "group_name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
		},
	})

	register(KindSchema{
		Name: "RECORD_LAYOUT",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
		},
	})

	register(KindSchema{
		Name: "VARIANT_CODING",
	})

	register(KindSchema{
		Name: "FRAME",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "scaling_unit", Kind: FInt},
			{Attr: "rate", Kind: FInt},
		},
	})

	register(KindSchema{
		Name: "USER_RIGHTS",
		Positional: []PositionalField{
			{Attr: "user_level_id", Kind: FIdent},
		},
	})

	register(KindSchema{
		Name: "UNIT",
		Positional: []PositionalField{
			{Attr: "name", Kind: FIdent},
			{Attr: "long_identifier", Kind: FString},
			{Attr: "display", Kind: FString},
			{Attr: "type", Kind: FIdent},
		},
	})
}
