package students

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/crucial707/student-records/cmd/cli/client"
	"github.com/crucial707/student-records/cmd/cli/output"
	"github.com/spf13/cobra"
)

// student mirrors the API's record; Gender keeps its capitalised wire name.
type student struct {
	Name   string `json:"name"`
	Gender string `json:"Gender"`
	Age    int    `json:"age"`
}

type messageResponse struct {
	Message string   `json:"message"`
	Student *student `json:"student,omitempty"`
}

// ==========================
// Init Students
// ==========================
func InitStudents(rootCmd *cobra.Command) {
	studentsCmd := &cobra.Command{
		Use:   "student",
		Short: "Create, read, update and delete student records",
	}

	studentsCmd.AddCommand(
		createStudentCmd(),
		getStudentCmd(),
		updateStudentCmd(),
		deleteStudentCmd(),
	)

	rootCmd.AddCommand(studentsCmd)
}

func studentPath(arg string) (string, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("invalid student id %q", arg)
	}
	return "/students/" + strconv.Itoa(id), nil
}

func renderStudents(w io.Writer, id string, s student) {
	output.RenderTable(w,
		[]string{"ID", "Name", "Gender", "Age"},
		[][]interface{}{{id, s.Name, s.Gender, s.Age}},
	)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// writeCmd builds create and update, which differ only in method and wording.
func writeCmd(use, short, method string) *cobra.Command {
	var s student
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := studentPath(args[0])
			if err != nil {
				return err
			}

			var resp messageResponse
			if err := client.JSON(cmd.Context(), method, path, s, &resp); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			if resp.Student != nil {
				renderStudents(cmd.OutOrStdout(), args[0], *resp.Student)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&s.Name, "name", "", "student name")
	cmd.Flags().StringVar(&s.Gender, "gender", "", "student gender")
	cmd.Flags().IntVar(&s.Age, "age", 0, "student age")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("gender")
	cmd.MarkFlagRequired("age")

	return cmd
}

// ==========================
// CREATE
// ==========================
func createStudentCmd() *cobra.Command {
	return writeCmd("create", "Create a student with the given id", http.MethodPost)
}

// ==========================
// UPDATE
// ==========================
func updateStudentCmd() *cobra.Command {
	return writeCmd("update", "Replace the student with the given id", http.MethodPut)
}

// ==========================
// GET
// ==========================
func getStudentCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := studentPath(args[0])
			if err != nil {
				return err
			}

			var s student
			if err := client.JSON(cmd.Context(), http.MethodGet, path, nil, &s); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			renderStudents(cmd.OutOrStdout(), args[0], s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteStudentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := studentPath(args[0])
			if err != nil {
				return err
			}

			var resp messageResponse
			if err := client.JSON(cmd.Context(), http.MethodDelete, path, nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
}
