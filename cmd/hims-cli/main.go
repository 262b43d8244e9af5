// hims-cli is the terminal front end for the patient-master API: front-desk
// registration, record lookup and report runs without the SPA.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hims/hims/internal/client"
	"github.com/hims/hims/internal/patientform"
	"github.com/hims/hims/internal/registration"
	"github.com/hims/hims/pkg/wire"
)

var (
	serverURL  string
	authToken  string
	hospitalID int
	userID     int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hims-cli",
		Short: "Terminal client for the patient-master API",
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("HIMS_SERVER", "http://localhost:8000"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("HIMS_TOKEN"), "bearer token (from hims-cli login)")
	rootCmd.PersistentFlags().IntVar(&hospitalID, "hospital", envIntOr("HIMS_HOSPITAL", 1), "hospital id")
	rootCmd.PersistentFlags().IntVar(&userID, "user", envIntOr("HIMS_USER", 1), "app user id stamped on writes")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(dropdownsCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAPI() *client.Client {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	api := client.New(serverURL, logger)
	if authToken != "" {
		api.SetToken(authToken)
	}
	return api
}

func cliLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := newAPI()
			token, err := api.Login(context.Background(), username, password)
			if err != nil {
				return err
			}
			fmt.Println(token)
			fmt.Fprintln(os.Stderr, "export HIMS_TOKEN to use it:", "export HIMS_TOKEN="+token)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := newAPI()
			patients, err := api.ListPatients(context.Background(), hospitalID)
			if err != nil {
				return err
			}

			fmt.Printf("%-8s %-16s %-8s %-24s %-8s %-10s %s\n",
				"ID", "CODE", "TITLE", "NAME", "GENDER", "AGE", "MOBILE")
			for _, p := range patients {
				name := strDeref(p.FirstName)
				if last := strDeref(p.LastName); last != "" {
					name += " " + last
				}
				fmt.Printf("%-8d %-16s %-8s %-24s %-8s %-10s %s\n",
					p.PatientID, strDeref(p.Code), strDeref(p.TitleName), name,
					strDeref(p.Gender), strDeref(p.Age), strDeref(p.MobileNumber))
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <patient-id>",
		Short: "Print one patient record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("patient id must be numeric: %q", args[0])
			}

			api := newAPI()
			detail, err := api.GetPatient(context.Background(), id, hospitalID)
			if err != nil {
				return err
			}
			return printJSON(detail)
		},
	}
}

// formFlags binds the registration form fields to command flags.
type formFlags struct {
	titleID      string
	firstName    string
	middleName   string
	lastName     string
	dob          string
	age          string
	ageUnit      string
	mobile       string
	email        string
	addressLine1 string
	addressLine2 string
	zipCode      string
	marital      string
	bloodGroup   string
	aadhaar      string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.titleID, "title", "", "title id from the title dropdown")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.middleName, "middle-name", "", "middle name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.dob, "dob", "", "date of birth (YYYY-MM-DD); age is derived")
	cmd.Flags().StringVar(&f.age, "age", "", "age value; date of birth is derived")
	cmd.Flags().StringVar(&f.ageUnit, "age-unit", "", "age unit: Years, Months or Days")
	cmd.Flags().StringVar(&f.mobile, "mobile", "", "10-digit mobile number")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.addressLine1, "address", "", "address line 1")
	cmd.Flags().StringVar(&f.addressLine2, "address2", "", "address line 2")
	cmd.Flags().StringVar(&f.zipCode, "zip", "", "zip code")
	cmd.Flags().StringVar(&f.marital, "marital", "", "marital status")
	cmd.Flags().StringVar(&f.bloodGroup, "blood-group", "", "blood group")
	cmd.Flags().StringVar(&f.aadhaar, "aadhaar", "", "12-digit aadhaar number")
}

// apply stages the provided flags into the form. Coupled fields go through
// the form setters so dob/age and title/gender derivation applies.
func (f *formFlags) apply(cmd *cobra.Command, form *patientform.State) {
	set := func(flag string, dst *string, val string) {
		if cmd.Flags().Changed(flag) {
			*dst = val
		}
	}
	set("first-name", &form.Values.FirstName, f.firstName)
	set("middle-name", &form.Values.MiddleName, f.middleName)
	set("last-name", &form.Values.LastName, f.lastName)
	set("mobile", &form.Values.MobileNumber, f.mobile)
	set("email", &form.Values.EmailID, f.email)
	set("address", &form.Values.AddressLine1, f.addressLine1)
	set("address2", &form.Values.AddressLine2, f.addressLine2)
	set("zip", &form.Values.ZipCode, f.zipCode)
	set("marital", &form.Values.MaritalStatus, f.marital)
	set("blood-group", &form.Values.BloodGroup, f.bloodGroup)
	set("aadhaar", &form.Values.AdharNo, f.aadhaar)

	if cmd.Flags().Changed("age-unit") {
		form.SetAgeUnit(patientform.AgeUnit(f.ageUnit))
	}
	if cmd.Flags().Changed("dob") {
		form.SetDateOfBirth(f.dob)
	}
	if cmd.Flags().Changed("age") {
		form.SetAgeValue(f.age)
	}
	if cmd.Flags().Changed("title") {
		form.SelectTitle(f.titleID)
	}
}

func registerCmd() *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session := registration.NewSession(newAPI(), cliLogger(), hospitalID, userID)
			if err := session.Begin(ctx); err != nil {
				return err
			}
			if session.Form.Values.MaritalStatus == "" {
				session.Form.Values.MaritalStatus = "Single"
			}

			flags.apply(cmd, session.Form)

			ack, err := session.Submit(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Registered patient %d with code %s\n", ack.PatientID, ack.Code)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "update <patient-id>",
		Short: "Update an existing patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("patient id must be numeric: %q", args[0])
			}

			ctx := context.Background()
			session := registration.NewSession(newAPI(), cliLogger(), hospitalID, userID)
			if err := session.BeginEdit(ctx, id); err != nil {
				return err
			}

			flags.apply(cmd, session.Form)

			ack, err := session.Submit(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Updated patient %d (%s)\n", ack.PatientID, ack.Code)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <patient-id>",
		Short: "Deactivate a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("patient id must be numeric: %q", args[0])
			}
			if !yes {
				return fmt.Errorf("refusing to delete without --yes")
			}

			ctx := context.Background()
			session := registration.NewSession(newAPI(), cliLogger(), hospitalID, userID)
			if err := session.BeginEdit(ctx, id); err != nil {
				return err
			}
			if err := session.Delete(ctx); err != nil {
				return err
			}
			fmt.Printf("Deactivated patient %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func dropdownsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dropdowns [type]",
		Short: "Print reference lists (all, or one type)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := newAPI()
			ctx := context.Background()

			if len(args) == 1 {
				if !wire.KnownDropdownType(args[0]) {
					return fmt.Errorf("unknown dropdown type %q", args[0])
				}
				opts, err := api.Dropdown(ctx, args[0])
				if err != nil {
					return err
				}
				printOptions(args[0], opts)
				return nil
			}

			all := api.LoadDropdowns(ctx, registration.DropdownTypes...)
			for _, dropdownType := range registration.DropdownTypes {
				printOptions(dropdownType, all[dropdownType])
			}
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var (
		reportType  string
		admissionNo string
		patientUHID string
		billNo      string
		testIDs     string
		labNo       string
		opIPInd     string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var params any
			switch reportType {
			case wire.ReportTypeIPBill:
				params = wire.IPBillParams{
					AdmissionNo: admissionNo,
					PatientUHID: patientUHID,
					HospitalID:  hospitalID,
					AppUserID:   userID,
				}
			case wire.ReportTypeLabReport:
				params = wire.LabReportParams{
					BillNo:     billNo,
					HospitalID: hospitalID,
					TestIDs:    testIDs,
					OpIpInd:    opIPInd,
					LabNo:      labNo,
				}
			default:
				return fmt.Errorf("unknown report type %q", reportType)
			}

			raw, err := json.Marshal(params)
			if err != nil {
				return err
			}

			api := newAPI()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			result, err := api.GenerateReport(ctx, wire.ReportRequest{
				OutputType: "PDF",
				ReportType: reportType,
				Parameters: raw,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&reportType, "type", wire.ReportTypeIPBill, "report type: IPBill or LabReport")
	cmd.Flags().StringVar(&admissionNo, "admission-no", "", "admission number (IPBill)")
	cmd.Flags().StringVar(&patientUHID, "patient-uhid", "", "patient UHID (IPBill)")
	cmd.Flags().StringVar(&billNo, "bill-no", "", "bill number (LabReport)")
	cmd.Flags().StringVar(&testIDs, "test-ids", "", "comma-separated test ids (LabReport)")
	cmd.Flags().StringVar(&labNo, "lab-no", "", "lab number (LabReport)")
	cmd.Flags().StringVar(&opIPInd, "opip", "OP", "OP/IP indicator (LabReport)")
	return cmd
}

func printOptions(dropdownType string, opts []wire.DropdownOption) {
	fmt.Printf("%s:\n", dropdownType)
	for _, o := range opts {
		fmt.Printf("  %4d  %s\n", o.ID, o.Name)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
