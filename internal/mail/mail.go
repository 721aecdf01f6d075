// Package mail composes templated email drafts for a candidate. It
// does no sending: the output is a draft the browser opens through a
// mailto link, with the candidate's name rendered into the body.
package mail

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"text/template"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

// ErrUnknownTemplate is returned when Compose is given a key that is
// not in the template set.
var ErrUnknownTemplate = errors.New("mail: unknown template")

// Draft is a ready-to-open email draft.
type Draft struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailtoUrl"`
}

// Template keys accepted by Compose.
const (
	TemplateCheckIn               = "check-in"
	TemplateMissedMeetingRegular  = "missed-meeting-regular"
	TemplateMissedMeetingStranger = "missed-meeting-stranger"
	TemplateBetterJobsOntario     = "better-jobs-ontario"
	TemplateCongratulations       = "congratulations"
	TemplatePresto                = "presto"
	TemplateSickReschedule        = "sick-reschedule"
	TemplateTransfer              = "transfer"
)

const signature = "Michael Lim | Agilec\nBA, RTWDM\nEmployment Coach\n250 Bayly Street West, Unit 19, Ajax, Ontario  L1S 3V4\n905-426-1760 x5107\nwww.agilec.ca"

type emailTemplate struct {
	label   string
	subject string
	body    *template.Template
}

func mustBody(key, text string) *template.Template {
	return template.Must(template.New(key).Parse(text))
}

var templates = map[string]emailTemplate{
	TemplateCheckIn: {
		label:   "Check-In",
		subject: "Agilec - Checking In",
		body: mustBody(TemplateCheckIn,
			"Hi {{.Name}},\n\nJust checking in on the job hunt on your side.\nEverything going well?\n\nLet's book another meeting.\nPlease book one here: Book time with Michael Lim\n\nPlease reach out should you have any questions.\nHave a good one,\n\n"+signature),
	},
	TemplateMissedMeetingRegular: {
		label:   "Missed Meeting (Regular)",
		subject: "Agilec - Missed Meeting",
		body: mustBody(TemplateMissedMeetingRegular,
			"Hello {{.Name}},\n\nUnfortunately, our scheduled meeting time has passed.\nPlease book our next meeting here: Book time with Michael Lim\n\nThanks and talk to you again soon,\n\n"+signature),
	},
	TemplateMissedMeetingStranger: {
		label:   "Missed Meeting (Stranger)",
		subject: "Agilec - Missed Meeting",
		body: mustBody(TemplateMissedMeetingStranger,
			"Hello {{.Name}},\n\nUnfortunately, our scheduled meeting time has passed.\nPlease feel free to reach out when you are ready to book again.\n\nThanks and best of luck,\n\n"+signature),
	},
	TemplateBetterJobsOntario: {
		label:   "Better Jobs Ontario",
		subject: "Agilec - Better Jobs Ontario Information",
		body: mustBody(TemplateBetterJobsOntario,
			"Hello {{.Name}},\n\nI hope everything is well.\nRegarding your interest in the Better Jobs Ontario program:\n\nAll interested candidates must sign up for a mandatory virtual information session.\nThe Better Jobs Ontario information session will cover general information about the program, including important terms, program suitability, eligibility, and Agilec's role in helping you complete your application.\nTo sign up for the Better Jobs Ontario information session, please use the link provided below to register, and select the session you would like to enroll in.\nBefore the information session, please have a copy of your Record of Employment and your most recent resume, as these documents are required for the Better Jobs Ontario application process.\n\nBetter Jobs Ontario Information Session: https://education.agilec.ca/resource/learn/course/external/view/classroom/762/better-jobs-ontario-customer-information-session\n\nIf you have any questions or concerns before the information session or need assistance creating an account, please reach out at your earliest convenience.\nWarm regards,\n\n"+signature),
	},
	TemplateCongratulations: {
		label:   "Congratulations (Job)",
		subject: "Agilec - Congratulations on Your New Job!",
		body: mustBody(TemplateCongratulations,
			"Congratulations {{.Name}} about the job!\n\nThe ministry requests the following details for the job:\nJob Title:\nCompany Name:\nHourly Wage:\nHours per week:\nStart Date:\n\nWe will continue to assist you for the next 12 months on the job.\nShould there be any requirements for the job that we can help with (like clothes for example), please let me know, and I can put in a request to assist you.\nAlso, in the unfortunate event that you lose employment, we can continue with the job search immediately.\n\nFinally, the ministry requests the following pay stubs:\n1st pay stub, 1 month pay stub, 3 month, 6 month and 12 month pay stub\n\nShould you have any questions, please feel free to reach out.\nCongratulations again!\n\n"+signature),
	},
	TemplatePresto: {
		label:   "Presto Pass Request",
		subject: "Agilec - Presto Pass for Next Month",
		body: mustBody(TemplatePresto,
			"Hi {{.Name}},\n\nI hope you are doing well!\n\nAs the new month is approaching, I wanted to plan ahead and ask if you require a Presto pass for next month?\nThis allows me time to put in the request early and hopefully expedite the approval.\n\nAs always, please note that the funding is meant to be temporary until you've landed employment and gained some stability at the job.\n\nPlease let me know.\nThanks!\n\n"+signature),
	},
	TemplateSickReschedule: {
		label:   "Sick Reschedule",
		subject: "Agilec - Need to Reschedule Our Meeting",
		body: mustBody(TemplateSickReschedule,
			"Good morning {{.Name}},\n\nI'm sorry but unfortunately I have to reschedule our meeting as I'm home sick today.\nPlease find the next best time here: Book time with Michael Lim\n\nThanks for understanding,\nMichael Lim\n905-426-1760 x5107"),
	},
	TemplateTransfer: {
		label:   "Transfer to Another Consultant",
		subject: "Agilec - Employment Consultant Transfer",
		body: mustBody(TemplateTransfer,
			"Hello {{.Name}},\n\nI hope that you are doing well.\n\nWe have a new employment consultant that has extensive previous experience as a job developer, and he will be taking over on helping you find work.\nHe will be reaching out to you to book your next meeting.\n\nHere's his contact information:\nNatiel McKenzie, Employment Consultant\nP: 905-426-1760 x5104\nE: nmckenzie@agilec.ca\n\nBest of luck on the job hunt!\n\n"+signature),
	},
}

// TemplateKeys lists the available template keys in a stable order.
func TemplateKeys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Label returns the display label for a template key.
func Label(key string) (string, bool) {
	t, ok := templates[key]
	return t.label, ok
}

// Compose renders the template for the candidate and returns the
// draft, including a mailto URL the browser can open directly.
func Compose(c candidate.Candidate, key string) (Draft, error) {
	t, ok := templates[key]
	if !ok {
		return Draft{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}
	var body strings.Builder
	if err := t.body.Execute(&body, c); err != nil {
		return Draft{}, fmt.Errorf("mail: render %s: %w", key, err)
	}
	d := Draft{
		To:      c.Email,
		Subject: t.subject,
		Body:    body.String(),
	}
	d.MailtoURL = "mailto:" + mailtoEscape(d.To) +
		"?subject=" + mailtoEscape(d.Subject) +
		"&body=" + mailtoEscape(d.Body)
	return d, nil
}

// mailtoEscape percent-encodes for mailto URLs. QueryEscape's
// plus-for-space convention is not understood by mail clients, so
// spaces become %20.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
