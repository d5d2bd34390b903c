package anonymize

// UserTable is a typical users table: fake contact details, masked phone,
// redacted SSN and a birth date generalized to the year.
func UserTable() TableConfig {
	return TableConfig{
		TableName: "users",
		Fields: []FieldConfig{
			{FieldName: "email", FieldType: TypeEmail, Method: Fake},
			{FieldName: "phone", FieldType: TypePhone, Method: Mask, Params: map[string]any{"show_last": 4}},
			{FieldName: "first_name", FieldType: TypeName, Method: Fake},
			{FieldName: "last_name", FieldType: TypeName, Method: Fake},
			{FieldName: "ssn", FieldType: TypeSSN, Method: Redact},
			{FieldName: "date_of_birth", FieldType: TypeDate, Method: Generalize, Params: map[string]any{"precision": "year"}},
			{FieldName: "address", FieldType: TypeAddress, Method: Fake},
			{FieldName: "created_at", FieldType: TypeDate, Method: Preserve},
		},
		PrimaryKey: "id",
	}
}

// OrdersTable is a typical orders table referencing users.id.
func OrdersTable() TableConfig {
	return TableConfig{
		TableName: "orders",
		Fields: []FieldConfig{
			{FieldName: "customer_email", FieldType: TypeEmail, Method: Fake},
			{FieldName: "shipping_address", FieldType: TypeAddress, Method: Fake},
			{FieldName: "phone", FieldType: TypePhone, Method: Mask},
			{FieldName: "amount", FieldType: TypeNumeric, Method: Preserve},
			{FieldName: "created_at", FieldType: TypeDate, Method: Preserve},
		},
		PrimaryKey:  "id",
		ForeignKeys: map[string]string{"user_id": "users.id"},
	}
}

// GDPRExportConfig anonymizes users for a data subject export and keeps a
// token vault so values can be restored.
func GDPRExportConfig() Config {
	cfg := NewConfig("GDPR Export", UserTable())
	cfg.UseTokenVault = true
	return cfg
}

// StagingCopyConfig anonymizes users and orders reproducibly for a staging
// database copy.
func StagingCopyConfig() Config {
	seed := int64(42)
	cfg := NewConfig("Staging Copy", UserTable(), OrdersTable())
	cfg.Seed = &seed
	return cfg
}

// Templates maps preset names to their configs.
func Templates() map[string]func() Config {
	return map[string]func() Config{
		"gdpr":    GDPRExportConfig,
		"staging": StagingCopyConfig,
	}
}
