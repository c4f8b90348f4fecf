package dto

// BulkStatusResponse resultado de POST /api/deliveries/bulk-status.
type BulkStatusResponse struct {
	OK        bool `json:"ok"`
	Processed int  `json:"processed"`
	Updated   int  `json:"updated"`
}

// ImportRowDTO fila de la vista previa con sus valores originales.
type ImportRowDTO struct {
	Index     int      `json:"index"`
	RowNumber int      `json:"row_number"`
	Values    []string `json:"values"`
	Valid     bool     `json:"valid"`
	Reason    string   `json:"reason,omitempty"`
}

// ImportPreviewResponse resultado de POST /api/deliveries/bulk/preview.
type ImportPreviewResponse struct {
	Columns   []string       `json:"columns"`
	HasHeader bool           `json:"has_header"`
	Rows      []ImportRowDTO `json:"rows"`
	Total     int            `json:"total"`
	Valid     int            `json:"valid"`
	Invalid   int            `json:"invalid"`
}

// RowErrorDTO motivo por el que una fila no se creó.
type RowErrorDTO struct {
	RowNumber int    `json:"row_number"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason"`
}

// BulkCreateResponse resultado de POST /api/deliveries/bulk.
type BulkCreateResponse struct {
	OK      bool          `json:"ok"`
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Failed  int           `json:"failed"`
	Errors  []RowErrorDTO `json:"errors"`
}
