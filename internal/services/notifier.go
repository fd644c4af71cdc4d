package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// ErrMailerNotConfigured blocks onboarding sends when SMTP credentials are
// missing; no partial operation proceeds.
var ErrMailerNotConfigured = errors.New("missing email credentials")

// DefaultEmailTemplate mirrors the standard invitation wording.
const DefaultEmailTemplate = "Dear {candidate},\n\n" +
	"Congratulations! You have been shortlisted for onboarding at our company.\n" +
	"Please join us on {date} at {time}.\n\n" +
	"Best Regards,\nHR Team"

const onboardingSubject = "🎉 Onboarding Invitation"

var (
	emailPattern       = regexp.MustCompile(`[a-zA-Z0-9.\-_+]+@[a-zA-Z0-9\-_]+\.[a-zA-Z0-9.\-_]+`)
	placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)
	slugPattern        = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)
)

// ExtractEmail finds the first email address in a blob of text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// GuessEmailFromFilename derives a deterministic placeholder address from the
// part of the filename before the first dot.
func GuessEmailFromFilename(filename, domain string) string {
	username := strings.SplitN(filename, "@", 2)[0]
	username = strings.SplitN(username, ".", 2)[0]
	username = strings.ToLower(slugPattern.ReplaceAllString(username, ""))
	if username == "" {
		username = "candidate"
	}

	return fmt.Sprintf("%s@%s", username, domain)
}

// FormatTemplate substitutes {placeholder} values into a template. Any
// placeholder left unresolved after substitution is a formatting error.
func FormatTemplate(template string, values map[string]string) (string, error) {
	formatted := template
	for key, value := range values {
		formatted = strings.ReplaceAll(formatted, "{"+key+"}", value)
	}

	if unresolved := placeholderPattern.FindString(formatted); unresolved != "" {
		return "", fmt.Errorf("unresolved template placeholder: %s", unresolved)
	}

	return formatted, nil
}

// NotifyRequest describes one candidate to invite.
type NotifyRequest struct {
	Candidate string
	Email     string // explicit address, may be empty
	FreeText  string // scanned for an address when Email is empty
	Filename  string // placeholder address source of last resort
	Role      string
	Date      string
	Time      string
	Template  string // DefaultEmailTemplate when empty
	// GeneratePlan adds a model-written 7-day plan for the {plan} placeholder;
	// a deterministic template is substituted when the model is unavailable.
	GeneratePlan bool
}

// OnboardingNotifier sends exactly one invitation per PASS candidate and
// appends every send attempt to the durable log. Transport failures are
// reported per recipient and never retried.
type OnboardingNotifier interface {
	Configured() bool
	Notify(ctx context.Context, req NotifyRequest, mode string) (OnboardingLogEntry, error)
}

type onboardingNotifier struct {
	mailer        Mailer
	gemini        GeminiService
	promptBuilder *PromptBuilder
	logbook       *OnboardingLog
	emailDomain   string
}

func NewOnboardingNotifier(mailer Mailer, gemini GeminiService, logbook *OnboardingLog, emailDomain string) OnboardingNotifier {
	if emailDomain == "" {
		emailDomain = "example.com"
	}

	return &onboardingNotifier{
		mailer:        mailer,
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		logbook:       logbook,
		emailDomain:   emailDomain,
	}
}

// Configured implements OnboardingNotifier.
func (n *onboardingNotifier) Configured() bool {
	return n.mailer != nil
}

// Notify implements OnboardingNotifier.
func (n *onboardingNotifier) Notify(ctx context.Context, req NotifyRequest, mode string) (OnboardingLogEntry, error) {
	entry := OnboardingLogEntry{
		Name:  req.Candidate,
		Email: n.resolveEmail(req),
		Date:  req.Date,
		Time:  req.Time,
		Mode:  mode,
	}

	if n.mailer == nil {
		return entry, ErrMailerNotConfigured
	}

	template := req.Template
	if template == "" {
		template = DefaultEmailTemplate
	}

	role := req.Role
	if role == "" {
		role = "the role"
	}

	values := map[string]string{
		"candidate":  req.Candidate,
		"date":       req.Date,
		"time":       req.Time,
		"role":       role,
		"start_date": req.Date,
	}
	if req.GeneratePlan {
		values["plan"] = n.planText(ctx, req.Candidate, role, req.Date)
	}

	body, err := FormatTemplate(template, values)
	if err != nil {
		return entry, err
	}

	sendErr := n.mailer.Send(ctx, entry.Email, onboardingSubject, body)
	if sendErr != nil {
		entry.Status = fmt.Sprintf("Failed: %v", sendErr)
	} else {
		entry.Status = "Sent"
	}

	if logErr := n.logbook.Append(entry); logErr != nil {
		log.Printf("⚠️ Failed to append onboarding log entry: %v\n", logErr)
	}

	return entry, sendErr
}

// resolveEmail picks the destination: explicit field, then a regex match in
// free text, then a placeholder derived from the filename.
func (n *onboardingNotifier) resolveEmail(req NotifyRequest) string {
	if req.Email != "" {
		return req.Email
	}
	if found := ExtractEmail(req.FreeText); found != "" {
		return found
	}

	return GuessEmailFromFilename(req.Filename, n.emailDomain)
}

func (n *onboardingNotifier) planText(ctx context.Context, name, role, startDate string) string {
	if n.gemini == nil {
		return fallbackPlan(name, role, startDate)
	}

	prompt := n.promptBuilder.BuildOnboardingPlanPrompt(name, role, startDate)
	text, err := n.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return fmt.Sprintf("(Could not generate plan: %v)\n\n%s", err, fallbackPlan(name, role, startDate))
	}

	return strings.TrimSpace(text)
}

func fallbackPlan(name, role, startDate string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Onboarding Plan for %s - %s\n", name, role)
	if startDate != "" {
		fmt.Fprintf(&b, "Start date: %s\n", startDate)
	}
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		"Day 1: Welcome, paperwork, access setup, team intro.",
		"Day 2: Product overview, onboarding docs, basic training.",
		"Day 3: Tools & environment setup, pairing with buddy.",
		"Day 4: Role-specific training sessions.",
		"Day 5: Meet cross-functional team, small task assigned.",
		"Day 6: Feedback session, Q&A with manager.",
		"Day 7: End-of-week review, next steps, goals.",
	}, "\n"))

	return b.String()
}
