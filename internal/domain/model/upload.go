package model

// UploadedFile — описание сохранённого файла в ответе на загрузку.
type UploadedFile struct {
	// FieldName — имя поля multipart формы
	FieldName string `json:"fieldname"`
	// OriginalName — имя файла на стороне клиента
	OriginalName string `json:"originalname"`
	// Encoding — Content-Transfer-Encoding части
	Encoding string `json:"encoding"`
	// MimeType — Content-Type части
	MimeType string `json:"mimetype"`
	// Destination — директория загрузок
	Destination string `json:"destination"`
	// Filename — имя файла на диске: <unix-millis>-<originalname>
	Filename string `json:"filename"`
	// Path — путь к файлу на диске
	Path string `json:"path"`
	// Size — размер в байтах
	Size int64 `json:"size"`
}
