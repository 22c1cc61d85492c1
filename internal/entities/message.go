package entities

// MessageKind classifies an inbound webhook payload.
type MessageKind string

const (
	KindText         MessageKind = "text"
	KindNonText      MessageKind = "non-text"
	KindStatus       MessageKind = "status"
	KindUnrecognized MessageKind = "unrecognized"
)

// InboundMessage is a normalized webhook payload. Built once per request,
// discarded when the request completes.
type InboundMessage struct {
	From     string
	Kind     MessageKind
	Text     string // set for KindText
	StatusID string // provider message id, set for KindStatus
}

// TemplateParameter fills one positional text slot in a template body.
type TemplateParameter struct {
	Value string `json:"value"`
}

// TemplateMessage is a pre-approved structured message for business-initiated contact.
type TemplateMessage struct {
	Name           string
	LanguageCode   string
	BodyParameters []TemplateParameter
	MediaURL       string // optional header image
}

// DeliveryReceipt is the gateway's acknowledgment of an accepted send.
type DeliveryReceipt struct {
	MessageID string
}
