package models

// MaxMessageTextLength is the platform limit for the text of one message.
const MaxMessageTextLength = 2048

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	URL          string       `json:"url,omitempty"`
	Color        int          `json:"color,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Fields       []EmbedField `json:"fields,omitempty"`
	Footer       string       `json:"footer,omitempty"`
}

// MessageInfo is one message to send. An empty Text means the message has no text.
type MessageInfo struct {
	Text  string `json:"text,omitempty"`
	Embed *Embed `json:"embed,omitempty"`
}

type MessageView struct {
	Messages []MessageInfo `json:"messages"`
}

func TextView(text string) MessageView {
	return MessageView{Messages: []MessageInfo{{Text: text}}}
}

func EmbedView(embed *Embed) MessageView {
	return MessageView{Messages: []MessageInfo{{Embed: embed}}}
}
