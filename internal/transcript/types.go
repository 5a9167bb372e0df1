// Package transcript parses exported WhatsApp chat JSON and normalizes its
// heterogeneous message records into a canonical shape for analysis.
package transcript

// RawSender is the nested sender object some export formats carry. Fields
// are tried in a fixed priority order when resolving a display name.
type RawSender struct {
	FormattedName string `json:"formattedName"`
	Name          string `json:"name"`
	ShortName     string `json:"shortName"`
	Phone         string `json:"phone"`
	ID            string `json:"id"`
}

// RawReply references the message being replied to.
type RawReply struct {
	Ref string `json:"ref"`
}

// RawReaction is a single emoji reaction entry on a message.
type RawReaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// RawMessage is the permissive structural form of one export record.
// Every field is optional; equivalent fields from different export
// versions sit side by side and are resolved during normalization.
type RawMessage struct {
	SerialNumber int    `json:"serialNumber"`
	MessageID    string `json:"messageId"`
	Datetime     string `json:"datetime"`
	Timestamp    string `json:"timestamp"`

	SenderName string     `json:"SenderName"`
	Sender     *RawSender `json:"sender"`

	Body    *string `json:"body"`
	Text    *string `json:"text"`
	Content *string `json:"content"`

	IsReply   bool           `json:"isReply"`
	ReplyTo   *RawReply      `json:"replyTo"`
	QuotedMsg map[string]any `json:"quotedMsg"`
	Reactions []RawReaction  `json:"reactions"`
}

// Message is the canonical, normalized message shape.
type Message struct {
	SerialNumber int
	MessageID    string
	Sender       string
	Timestamp    string
	Text         string
	IsReply      bool
	ReplyTo      string // empty when the message references nothing
	Reactions    []RawReaction
}

// EmojiCount returns the total number of emoji reactions on the message,
// treating an absent count as zero.
func (m *Message) EmojiCount() int {
	total := 0
	for _, r := range m.Reactions {
		if r.Count > 0 {
			total += r.Count
		}
	}
	return total
}
