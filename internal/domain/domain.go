package domain

import (
	"github.com/harborlegal/practice-backend/internal/domain/firm"
	"github.com/harborlegal/practice-backend/internal/domain/forms"
)

type LawFirm = firm.LawFirm
type User = firm.User
type Client = firm.Client

type FormTemplate = forms.FormTemplate
type FormSection = forms.FormSection
type FormField = forms.FormField
type FormRequiredDocument = forms.FormRequiredDocument
type ClientForm = forms.ClientForm
type FormResponse = forms.FormResponse
type ClientFormDocument = forms.ClientFormDocument
type FormNotification = forms.FormNotification
type FormAuditLog = forms.FormAuditLog

const (
	StatusPending    = forms.StatusPending
	StatusInProgress = forms.StatusInProgress
	StatusCompleted  = forms.StatusCompleted
	StatusReviewed   = forms.StatusReviewed
	StatusApproved   = forms.StatusApproved
	StatusRejected   = forms.StatusRejected

	AuditCreated          = forms.AuditCreated
	AuditFieldUpdated     = forms.AuditFieldUpdated
	AuditDocumentUploaded = forms.AuditDocumentUploaded
	AuditDocumentDeleted  = forms.AuditDocumentDeleted
	AuditSubmitted        = forms.AuditSubmitted
	AuditReviewed         = forms.AuditReviewed
	AuditApproved         = forms.AuditApproved
	AuditRejected         = forms.AuditRejected
	AuditReminderSent     = forms.AuditReminderSent

	NotificationFormSent      = forms.NotificationFormSent
	NotificationCompletion    = forms.NotificationCompletion
	NotificationReminder      = forms.NotificationReminder
	NotificationReviewRequest = forms.NotificationReviewRequest
	NotificationApproved      = forms.NotificationApproved

	NotificationStatusPending = forms.NotificationStatusPending
	NotificationStatusSent    = forms.NotificationStatusSent
	NotificationStatusFailed  = forms.NotificationStatusFailed
)
