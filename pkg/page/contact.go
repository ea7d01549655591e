package page

import (
	"github.com/vango-dev/folio/pkg/form"
	"github.com/vango-dev/folio/pkg/toast"
	"github.com/vango-dev/folio/pkg/view"
)

// FormState is the state of the contact form.
type FormState int

const (
	// FormIdle accepts submissions.
	FormIdle FormState = iota
	// FormSubmitting is waiting for the simulated send to finish.
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Contact form messages.
const (
	MessageFillAllFields = "Please fill in all fields"
	MessageInvalidEmail  = "Please enter a valid email address"
	MessageTooLong       = "Your message is too long"
	MessageSent          = "Thank you for your message! I'll get back to you soon."
	sendingLabel         = "Sending..."
)

// Contact field limits, in characters. The markup sets them as maxlength.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxMessageLength = 5000
)

// contactSchema is checked in order; the first failure is reported.
var contactSchema = form.Schema{
	form.Rule(form.Required(MessageFillAllFields), "name", "email", "message"),
	form.Rule(form.Email(MessageInvalidEmail), "email"),
	form.Rule(form.MaxLength(MaxNameLength, MessageTooLong), "name"),
	form.Rule(form.MaxLength(MaxEmailLength, MessageInvalidEmail), "email"),
	form.Rule(form.MaxLength(MaxMessageLength, MessageTooLong), "message"),
}

// initContactForm wires the simulated contact form.
func (c *Controller) initContactForm() {
	c.contactForm = c.query(view.ByID(idContactForm))
	c.submitButton = c.query(view.ByID(idSubmitButton))
	if c.contactForm.IsZero() || c.submitButton.IsZero() {
		c.contactForm, c.submitButton = "", ""
		return
	}
	c.view.On(c.contactForm, view.Submit, view.ListenOptions{PreventDefault: true}, func(e view.Event) {
		c.submitContact(e.Fields)
	})
}

// submitContact validates fields and simulates sending them.
func (c *Controller) submitContact(fields map[string]string) {
	if c.formState == FormSubmitting {
		c.logger.Debug("submit ignored while sending")
		c.submitted("ignored")
		return
	}

	if err := contactSchema.Validate(fields); err != nil {
		toast.Error(c, err.Error())
		c.submitted("invalid")
		return
	}

	c.formState = FormSubmitting
	c.submitLabel = c.view.Text(c.submitButton)
	c.view.SetText(c.submitButton, sendingLabel)
	c.view.SetDisabled(c.submitButton, true)

	c.clock.AfterFunc(c.opts.SubmitDelay, func() {
		toast.Success(c, MessageSent)
		c.view.ResetForm(c.contactForm)
		c.view.SetText(c.submitButton, c.submitLabel)
		c.view.SetDisabled(c.submitButton, false)
		c.formState = FormIdle
		c.submitted("sent")
	})
}

func (c *Controller) submitted(outcome string) {
	if c.opts.Hooks.Submitted != nil {
		c.opts.Hooks.Submitted(outcome)
	}
}
