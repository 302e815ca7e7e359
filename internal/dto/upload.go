package dto

// UploadResponse 批量导入结果
// Count 为实际写入的行数，Failed 为被拒绝的行数
type UploadResponse struct {
	Message string        `json:"message"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
	Failed  int           `json:"failed"`
	Errors  []UploadError `json:"errors,omitempty"`
}

// UploadError 单行导入失败原因，Row 从 1 开始（不含表头）
type UploadError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Reject 记录一行失败
func (r *UploadResponse) Reject(row int, reason string) {
	r.Errors = append(r.Errors, UploadError{Row: row, Reason: reason})
}
