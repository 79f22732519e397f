package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wolfman30/onboardai/internal/demoapi"
	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/internal/formflow"
	"github.com/wolfman30/onboardai/pkg/logging"
)

var errAborted = errors.New("demoform: input closed before the request was submitted")

func submitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Fill in and submit a demo request interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWizard(c.in, c.out, c.api, c.logger).run(cmd.Context())
		},
	}
}

type option struct {
	id, label string
}

// wizard drives a formflow.Flow from line-oriented terminal input.
type wizard struct {
	in   *bufio.Scanner
	out  io.Writer
	api  *demoapi.Service
	flow *formflow.Flow

	industries []option
	sizes      []option
}

func newWizard(in io.Reader, out io.Writer, api *demoapi.Service, logger *logging.Logger) *wizard {
	return &wizard{
		in:   bufio.NewScanner(in),
		out:  out,
		api:  api,
		flow: formflow.New(api, logger),
	}
}

func (w *wizard) run(ctx context.Context) error {
	if err := w.loadCatalogs(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w.out, "Request a demo")

	for {
		var err error
		switch w.flow.State() {
		case formflow.StateCompanyInfo:
			err = w.companyStep()
		case formflow.StateContactInfo:
			err = w.contactStep(ctx)
		case formflow.StateSuccess:
			w.printSuccess()
			return nil
		default:
			return fmt.Errorf("demoform: unexpected state %s", w.flow.State())
		}
		if err != nil {
			return err
		}
	}
}

func (w *wizard) loadCatalogs(ctx context.Context) error {
	industries, err := w.api.GetIndustries(ctx)
	if err != nil {
		return fmt.Errorf("load industries: %w", err)
	}
	for _, ind := range industries {
		w.industries = append(w.industries, option{ind.ID, strings.TrimSpace(ind.Icon + " " + ind.Name)})
	}
	sizes, err := w.api.GetCompanySizes(ctx)
	if err != nil {
		return fmt.Errorf("load company sizes: %w", err)
	}
	for _, s := range sizes {
		w.sizes = append(w.sizes, option{s.ID, fmt.Sprintf("%s (%s)", s.Label, s.Range)})
	}
	return nil
}

func (w *wizard) companyStep() error {
	fmt.Fprintln(w.out, "\nStep 1 of 2: Company information")
	draft := w.flow.View().Draft

	if err := w.askField(formflow.FieldCompanyName, "Company name", draft.CompanyName); err != nil {
		return err
	}
	if err := w.chooseField(formflow.FieldIndustry, "Industry", w.industries, draft.Industry); err != nil {
		return err
	}
	if err := w.chooseField(formflow.FieldCompanySize, "Company size", w.sizes, draft.CompanySize); err != nil {
		return err
	}
	if err := w.askField(formflow.FieldWebsite, "Website (optional)", draft.Website); err != nil {
		return err
	}

	var incomplete *formflow.IncompleteStepError
	if err := w.flow.Next(); errors.As(err, &incomplete) {
		fmt.Fprintf(w.out, "Please fill in: %s\n", strings.Join(incomplete.Missing, ", "))
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func (w *wizard) contactStep(ctx context.Context) error {
	fmt.Fprintln(w.out, "\nStep 2 of 2: Contact details")
	draft := w.flow.View().Draft

	prompts := []struct {
		field, label, current string
	}{
		{formflow.FieldFullName, "Full name", draft.FullName},
		{formflow.FieldJobTitle, "Job title", draft.JobTitle},
		{formflow.FieldEmail, "Work email", draft.Email},
		{formflow.FieldPhone, "Phone (optional)", draft.Phone},
		{formflow.FieldUseCase, "Primary use case (optional)", draft.UseCase},
		{formflow.FieldTimeline, "Timeline (optional)", draft.Timeline},
		{formflow.FieldPreferredDate, "Preferred demo date YYYY-MM-DD (optional)", draft.PreferredDate},
	}
	for _, p := range prompts {
		if err := w.askField(p.field, p.label, p.current); err != nil {
			return err
		}
	}
	if err := w.chooseSlot(ctx); err != nil {
		return err
	}
	if err := w.askField(formflow.FieldAdditionalNotes, "Anything else? (optional)", draft.AdditionalNotes); err != nil {
		return err
	}

	for {
		answer, err := w.ask("Submit request? [y]es / [b]ack / [e]dit", "y")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return w.submit(ctx)
		case "b", "back":
			return w.flow.Back()
		case "e", "edit":
			return nil
		}
	}
}

func (w *wizard) chooseSlot(ctx context.Context) error {
	view := w.flow.View()
	if view.Draft.PreferredDate == "" {
		return w.flow.Set(formflow.FieldPreferredTime, "")
	}
	slots, err := w.api.GetTimeSlots(ctx, view.Draft.PreferredDate)
	if err != nil {
		fmt.Fprintf(w.out, "Could not load time slots: %s\n", messageOf(err))
		return w.flow.Set(formflow.FieldPreferredDate, "")
	}
	var opts []option
	for _, s := range slots {
		if s.Available {
			opts = append(opts, option{s.StartTime + "-" + s.EndTime, s.Label})
		}
	}
	if len(opts) == 0 {
		fmt.Fprintln(w.out, "No open slots on that date; our team will propose a time.")
		return w.flow.Set(formflow.FieldPreferredTime, "")
	}
	return w.chooseField(formflow.FieldPreferredTime, "Time slot", opts, view.Draft.PreferredTime)
}

func (w *wizard) submit(ctx context.Context) error {
	fmt.Fprintln(w.out, "Submitting...")
	if _, err := w.flow.Submit(ctx); err != nil {
		if errors.Is(err, formflow.ErrSubmitInFlight) || errors.Is(err, formflow.ErrInvalidState) {
			return err
		}
		fmt.Fprintf(w.out, "Error: %s\n", w.flow.View().Error)
		if apiErr, ok := demorequest.AsAPIError(w.flow.LastError()); ok {
			fields := make([]string, 0, len(apiErr.Details))
			for field := range apiErr.Details {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				fmt.Fprintf(w.out, "  %s: %s\n", field, strings.Join(apiErr.Details[field], "; "))
			}
		}
	}
	return nil
}

func (w *wizard) printSuccess() {
	result := w.flow.View().Result
	fmt.Fprintln(w.out, "\nThank you!")
	if result.Message != "" {
		fmt.Fprintln(w.out, result.Message)
	}
	fmt.Fprintf(w.out, "Request ID: %s\n", result.RequestID)
	if result.ScheduledDate != "" {
		fmt.Fprintf(w.out, "Scheduled: %s\n", result.ScheduledDate)
	}
}

func (w *wizard) askField(field, label, current string) error {
	value, err := w.ask(label, current)
	if err != nil {
		return err
	}
	return w.flow.Set(field, value)
}

// chooseField accepts either the option number or its id.
func (w *wizard) chooseField(field, label string, opts []option, current string) error {
	for i, o := range opts {
		fmt.Fprintf(w.out, "  %d) %s\n", i+1, o.label)
	}
	for {
		answer, err := w.ask(label, current)
		if err != nil {
			return err
		}
		if answer == "" {
			return w.flow.Set(field, "")
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(opts) {
			return w.flow.Set(field, opts[n-1].id)
		}
		for _, o := range opts {
			if strings.EqualFold(o.id, answer) {
				return w.flow.Set(field, o.id)
			}
		}
		fmt.Fprintf(w.out, "Pick 1-%d.\n", len(opts))
	}
}

// ask reads one line. An empty answer keeps current.
func (w *wizard) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(w.out, "%s: ", label)
	}
	if !w.in.Scan() {
		if err := w.in.Err(); err != nil {
			return "", err
		}
		return "", errAborted
	}
	answer := strings.TrimSpace(w.in.Text())
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

func messageOf(err error) string {
	if apiErr, ok := demorequest.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
