package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/reconcile"

	"github.com/pterm/pterm"
)

const dateLayout = "2006-01-02"

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statusText(s reconcile.Status) string {
	switch s {
	case reconcile.StatusSuccess:
		return pterm.Green(string(s))
	case reconcile.StatusWarning:
		return pterm.Yellow(string(s))
	default:
		return pterm.Red(string(s))
	}
}

func outcomeMessage(o reconcile.Outcome) string {
	msg := o.Message
	if o.Err != nil {
		msg = o.Err.Error()
	}
	if len(o.Performed) > 0 {
		msg += " (done: " + strings.Join(o.Performed, ", ") + ")"
	}
	return msg
}

// renderOutcomes prints one row per provider outcome.
func renderOutcomes(report *reconcile.Report) error {
	if jsonFlag {
		return printJSON(report)
	}
	data := pterm.TableData{{"Provider", "Status", "Code", "Message"}}
	for _, o := range report.Outcomes {
		data = append(data, []string{o.Provider, statusText(o.Status), string(o.Code), outcomeMessage(o)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderUsers(report *reconcile.Report) error {
	if jsonFlag {
		return printJSON(report)
	}
	if report.FromCache {
		pterm.Info.Println("Served from the local store, run without --cached for live data")
	}
	if err := renderFailures(report); err != nil {
		return err
	}
	if len(report.Users) == 0 {
		pterm.Warning.Println("No users found")
		return nil
	}

	data := pterm.TableData{{"Email", "Name", "Providers"}}
	for _, u := range report.Users {
		data = append(data, []string{u.Email, u.Name, strings.Join(u.ProviderNames(), ", ")})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printfln("%s users", pterm.LightGreen(len(report.Users)))
	return nil
}

func renderInfo(report *reconcile.Report) error {
	if jsonFlag {
		return printJSON(report)
	}
	if err := renderOutcomes(report); err != nil {
		return err
	}
	for _, u := range report.Users {
		pterm.DefaultSection.Printfln("%s (%s)", u.Email, u.Name)
		data := pterm.TableData{{"Provider", "Spend", "Workspace", "Set limit", "API keys"}}
		for _, p := range u.Providers {
			data = append(data, []string{p.Name, credits(p.CreditsUsed), p.WorkspaceURL, p.SetLimitURL, keyList(p.APIKeys)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}
	return nil
}

func renderInvites(report *reconcile.Report) error {
	if jsonFlag {
		return printJSON(report)
	}
	if err := renderFailures(report); err != nil {
		return err
	}
	if len(report.Invites) == 0 {
		pterm.Warning.Println("No invites found")
		return nil
	}

	data := pterm.TableData{{"Provider", "Email", "Status", "Invited", "Expires"}}
	for _, inv := range report.Invites {
		data = append(data, []string{inv.Provider, inv.Email, string(inv.Status), date(inv.InvitedAt.Format(dateLayout)), date(inv.ExpiresAt.Format(dateLayout))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderPlan(plan *reconcile.RemovalPlan) error {
	if jsonFlag {
		return printJSON(plan)
	}
	data := pterm.TableData{{"Provider", "Action", "Target", "Note"}}
	for _, pp := range plan.Providers {
		if pp.Outcome != nil {
			data = append(data, []string{pp.Provider, "-", "-", outcomeMessage(*pp.Outcome)})
			continue
		}
		for _, a := range pp.Actions {
			data = append(data, []string{pp.Provider, string(a.Type), a.TargetID, a.Label})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderFailures prints the outcomes only when some provider failed.
func renderFailures(report *reconcile.Report) error {
	if !report.Failed() {
		return nil
	}
	return renderOutcomes(report)
}

func credits(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func keyList(keys []identity.APIKeyRef) string {
	if len(keys) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%s)", k.Name, k.KeyHint))
	}
	return strings.Join(parts, ", ")
}

func date(s string) string {
	if s == "0001-01-01" {
		return "-"
	}
	return s
}

// spin shows a spinner until the returned func is called. JSON output stays clean.
func spin(text string) func() {
	if jsonFlag {
		return func() {}
	}
	s, err := pterm.DefaultSpinner.WithRemoveWhenDone().Start(text)
	if err != nil {
		return func() {}
	}
	return func() { _ = s.Stop() }
}
