package transcript

import (
	"strings"

	"github.com/google/uuid"
)

// UnknownSender is the literal used when no usable sender field exists.
const UnknownSender = "Unknown"

// noTextSentinel is what some export versions write for media-only messages.
const noTextSentinel = "[No text]"

// Normalize maps a slice of raw export records into canonical Messages,
// preserving order. It is a pure mapping apart from uuid generation for
// records missing a messageId.
func Normalize(raws []RawMessage) []Message {
	msgs := make([]Message, 0, len(raws))
	for _, raw := range raws {
		msgs = append(msgs, normalizeOne(raw))
	}
	return msgs
}

func normalizeOne(raw RawMessage) Message {
	id := raw.MessageID
	if id == "" {
		// The reply join key must stay unique even for records the
		// exporter left unidentified.
		id = uuid.NewString()
	}

	ts := raw.Datetime
	if ts == "" {
		ts = raw.Timestamp
	}

	replyTo := ""
	if raw.ReplyTo != nil {
		replyTo = raw.ReplyTo.Ref
	}

	return Message{
		SerialNumber: raw.SerialNumber,
		MessageID:    id,
		Sender:       resolveSender(raw),
		Timestamp:    ts,
		Text:         resolveText(raw),
		IsReply:      raw.IsReply || raw.ReplyTo != nil || raw.QuotedMsg != nil,
		ReplyTo:      replyTo,
		Reactions:    raw.Reactions,
	}
}

// resolveSender tries the direct SenderName string, then the nested sender
// object's fields in priority order, then falls back to UnknownSender.
func resolveSender(raw RawMessage) string {
	if s := strings.TrimSpace(raw.SenderName); s != "" {
		return s
	}
	if raw.Sender != nil {
		for _, candidate := range []string{
			raw.Sender.FormattedName,
			raw.Sender.Name,
			raw.Sender.ShortName,
			raw.Sender.Phone,
			raw.Sender.ID,
		} {
			if s := strings.TrimSpace(candidate); s != "" {
				return s
			}
		}
	}
	return UnknownSender
}

// resolveText picks the first present text field and normalizes the
// "[No text]" sentinel to empty.
func resolveText(raw RawMessage) string {
	for _, candidate := range []*string{raw.Body, raw.Text, raw.Content} {
		if candidate == nil {
			continue
		}
		if *candidate == noTextSentinel {
			return ""
		}
		return *candidate
	}
	return ""
}
