package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/c14220110/radiology-client/internal/common/models"
	"github.com/c14220110/radiology-client/internal/view"
)

const helpText = `commands:
  login <username> <password> <role>   authenticate (role: admin|doctor|technician|radiologist|patient)
  logout                               end the session
  nav <n>                              select sidebar entry n (1-based)
  refresh                              re-fetch the active section
  set <field> <value...>               fill a form field on the active section
  fields                               list known form fields per section
  add-doctor | add-technician | add-radiologist | add-patient   (admin, from form fields)
  schedule                             (admin) create a case from the form
  delete-case <caseId>                 (admin)
  new-case                             (doctor) create a case from the form
  diagnose <caseId> | doc-notes <caseId> | prescribe <caseId>   (doctor, from form fields)
  upload <caseId> <file>               (technician)
  analyze <caseId>                     (radiologist)
  radio-notes <caseId>                 (radiologist, from "notes" field)
  ask <caseId> <question...>           (radiologist) AI chat
  report <caseId>                      (patient) show PDF link
  help | quit`

// RunLoop reads commands until EOF or quit. It is the terminal stand-in for
// the page's click handlers: every command maps to one UI action.
func (a *App) RunLoop(ctx context.Context, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "radiology-client ready. Type 'help' for commands.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd, rest := args[0], args[1:]
		if cmd == "quit" || cmd == "exit" {
			return
		}
		a.handle(ctx, out, cmd, rest)
	}
}

func (a *App) handle(ctx context.Context, out io.Writer, cmd string, args []string) {
	switch cmd {
	case "help":
		fmt.Fprintln(out, helpText)

	case "login":
		if len(args) != 3 {
			fmt.Fprintln(out, "usage: login <username> <password> <role>")
			return
		}
		if err := a.Login(ctx, args[0], args[1], models.Role(args[2])); err != nil {
			// Shown inline, like the login error banner.
			fmt.Fprintln(out, "login failed:", view.ErrorMessage(err))
		}

	case "logout":
		a.Logout(ctx)
		fmt.Fprintln(out, "logged out")

	case "nav":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: nav <n>")
			return
		}
		n, err := strconv.Atoi(args[0])
		items := a.Registry.Nav()
		if err != nil || n < 1 || n > len(items) {
			fmt.Fprintln(out, "no such sidebar entry")
			return
		}
		a.Registry.Select(ctx, items[n-1].Target)

	case "refresh":
		a.refreshActive(ctx)

	case "set":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: set <field> <value...>")
			return
		}
		sec := a.activeSection()
		if sec == nil {
			fmt.Fprintln(out, "no active section")
			return
		}
		sec.SetField(args[0], strings.Join(args[1:], " "))

	case "fields":
		fmt.Fprintln(out, fieldHints)

	case "add-doctor":
		a.Admin.AddDoctor(ctx)
	case "add-technician":
		a.Admin.AddTechnician(ctx)
	case "add-radiologist":
		a.Admin.AddRadiologist(ctx)
	case "add-patient":
		a.Admin.AddPatient(ctx)
	case "schedule":
		a.Admin.ScheduleCase(ctx)
	case "delete-case":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: delete-case <caseId>")
			return
		}
		a.Admin.DeleteCase(ctx, args[0])

	case "new-case":
		a.Doctor.CreateCase(ctx)
	case "diagnose":
		if len(args) == 1 {
			a.Doctor.SaveDiagnosis(ctx, args[0])
		} else {
			fmt.Fprintln(out, "usage: diagnose <caseId> (set the 'diagnosis' field first)")
		}
	case "doc-notes":
		if len(args) == 1 {
			a.Doctor.SaveNotes(ctx, args[0])
		} else {
			fmt.Fprintln(out, "usage: doc-notes <caseId> (set the 'notes' field first)")
		}
	case "prescribe":
		if len(args) == 1 {
			a.Doctor.Prescribe(ctx, args[0])
		} else {
			fmt.Fprintln(out, "usage: prescribe <caseId> (set the 'prescription' field first)")
		}

	case "upload":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: upload <caseId> <file>")
			return
		}
		file, err := os.Open(args[1])
		if err != nil {
			fmt.Fprintln(out, "cannot open file:", err)
			return
		}
		defer file.Close()
		a.Technician.UploadImage(ctx, args[0], filepath.Base(args[1]), file)

	case "analyze":
		if len(args) == 1 {
			a.Radiologist.RunAIAnalysis(ctx, args[0])
		} else {
			fmt.Fprintln(out, "usage: analyze <caseId>")
		}
	case "radio-notes":
		if len(args) == 1 {
			a.Radiologist.SaveNotes(ctx, args[0])
		} else {
			fmt.Fprintln(out, "usage: radio-notes <caseId> (set the 'notes' field first)")
		}
	case "ask":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: ask <caseId> <question...>")
			return
		}
		a.Radiologist.AskAI(ctx, args[0], strings.Join(args[1:], " "))

	case "report":
		if len(args) == 1 {
			a.Patient.ShowReportLink(args[0])
		} else {
			fmt.Fprintln(out, "usage: report <caseId>")
		}

	default:
		fmt.Fprintln(out, "unknown command, try 'help'")
	}
}

const fieldHints = `form fields by section:
  adminUsers:    docName docEmail docUser docPass / techName... / radioName... / patName patEmail patUser patPass patPriority
  adminSchedule: casePatient caseDoctor caseDate caseSlot caseScanType casePriority caseRefDoc caseSymptoms
  doctorNewCase: patient date timeSlot scanType priority symptoms
  doctorCases:   diagnosis notes prescription
  radioCases:    notes`

// activeSection resolves the section behind the selected sidebar entry.
func (a *App) activeSection() *view.Section {
	items := a.Registry.Nav()
	idx := a.Registry.ActiveIndex()
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return a.Surface.Section(items[idx].Target)
}

func (a *App) refreshActive(ctx context.Context) {
	items := a.Registry.Nav()
	idx := a.Registry.ActiveIndex()
	if idx < 0 || idx >= len(items) {
		return
	}
	a.Registry.Select(ctx, items[idx].Target)
}
