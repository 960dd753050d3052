package services

const (
	messageText     = "text"
	messageSticker  = "sticker"
	messageLocation = "location"
	messageImage    = "image"
	messageVideo    = "video"
	messageAudio    = "audio"
	messageFile     = "file"
)

const fallbackContentType = "application/octet-stream"

func isFileBearing(kind string) bool {
	switch kind {
	case messageImage, messageVideo, messageAudio, messageFile:
		return true
	default:
		return false
	}
}

// fileDefaults names the upload and its content type for an attachment.
func fileDefaults(msg messagePayload) (string, string) {
	switch msg.Type {
	case messageImage:
		return msg.ID + ".jpg", "image/jpeg"
	case messageVideo:
		return msg.ID + ".mp4", "video/mp4"
	case messageAudio:
		return msg.ID + ".m4a", "audio/m4a"
	case messageFile:
		name := msg.FileName
		if name == "" {
			name = msg.ID + ".bin"
		}
		contentType := msg.ContentType
		if contentType == "" {
			contentType = fallbackContentType
		}
		return name, contentType
	default:
		return msg.ID + ".bin", fallbackContentType
	}
}

func hasDuration(kind string) bool {
	return kind == messageVideo || kind == messageAudio
}

func previewURL(msg messagePayload) *string {
	if msg.Type != messageVideo || msg.ContentProvider == nil || msg.ContentProvider.PreviewImageURL == "" {
		return nil
	}
	value := msg.ContentProvider.PreviewImageURL
	return &value
}
