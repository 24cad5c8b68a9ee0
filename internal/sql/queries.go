// Package sql holds the embedded SQL used by the store layer: one file per
// query plus the schema migrations.
package sql

import "embed"

//go:embed migrations
var Migrations embed.FS

//go:embed queries/upsert_master_item.sql
var UpsertMasterItem string

//go:embed queries/create_upload.sql
var CreateUpload string

//go:embed queries/finalize_upload.sql
var FinalizeUpload string

//go:embed queries/master_item_by_code.sql
var MasterItemByCode string

//go:embed queries/master_items_by_codes.sql
var MasterItemsByCodes string

//go:embed queries/master_items_all.sql
var MasterItemsAll string

//go:embed queries/note_by_id.sql
var NoteByID string

//go:embed queries/notes_by_range.sql
var NotesByRange string

//go:embed queries/diagnoses_by_note.sql
var DiagnosesByNote string

//go:embed queries/prescriptions_by_note.sql
var PrescriptionsByNote string
