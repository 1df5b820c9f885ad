package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/services"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take an interest quiz in the terminal",
	Long: `Generate a quiz on a topic and answer it question by question.

The topic is one of the built-in topic IDs (see "compass quiz topics") or any
free text. Results are saved to your history when you are signed in.`,
	RunE: runQuiz,
}

var quizTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the built-in quiz topics",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-20s  %s\n", "ID", "Name", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, t := range quiz.Topics() {
			fmt.Fprintf(out, "%-20s  %-20s  %s\n", t.ID, t.Name, t.Description)
		}
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "general-knowledge", "Topic ID or free-text topic")
	quizCmd.Flags().IntP("questions", "n", quizgen.DefaultQuestions, "Number of questions (1-20)")
	quizCmd.Flags().StringP("difficulty", "d", string(quizgen.DifficultyMedium), "Difficulty: easy, medium or hard")

	quizCmd.AddCommand(quizTopicsCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topicVal, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("questions")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	e, err := newEnv(cmd, envOptions{ai: true})
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.requireAI(); err != nil {
		return err
	}
	e.warnAnonymous(cmd)

	sess := quiz.NewSession()
	sess.Difficulty = quizgen.Difficulty(strings.ToLower(difficulty))
	sess.Start(resolveTopic(topicVal))

	in := sess.Input()
	in.NumberOfQuestions = count
	if _, err := in.Normalize(); err != nil {
		return err
	}

	return playQuiz(cmd.Context(), e.svc, sess, in, cmd.InOrStdin(), cmd.OutOrStdout())
}

// resolveTopic matches a built-in topic, or wraps free text as a topic.
func resolveTopic(val string) quiz.Topic {
	if t, ok := quiz.TopicByID(val); ok {
		return t
	}
	name := strings.TrimSpace(val)
	return quiz.Topic{ID: strings.ToLower(strings.Join(strings.Fields(name), "-")), Name: name}
}

// playQuiz generates the quiz, asks each question on out, reads answers
// (option numbers) from in and saves the result for a signed-in user.
func playQuiz(ctx context.Context, svc *services.Services, sess *quiz.Session, in quizgen.Input, r io.Reader, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(w, "Generating your %s quiz...\n\n", sess.Topic.Name)
	q, err := svc.Quizzes.Generate(ctx, in)
	if err != nil {
		sess.Failed(err)
		return fmt.Errorf("%s: %s", sess.Message, aiflow.UserMessage(err))
	}
	if err := sess.Loaded(q); err != nil {
		return err
	}
	if sess.Phase != quiz.PhaseInProgress {
		return fmt.Errorf("%s", sess.Message)
	}

	fmt.Fprintf(w, "%s\n\n", q.Title)
	scanner := bufio.NewScanner(r)
	for sess.Phase == quiz.PhaseInProgress {
		cur := sess.Current()
		fmt.Fprintf(w, "── Question %d/%d ──\n", sess.Index+1, sess.Total())
		fmt.Fprintln(w, cur.Text)
		for j, opt := range cur.Options {
			fmt.Fprintf(w, "  %d) %s\n", j+1, opt)
		}

		for !sess.CanAdvance() {
			fmt.Fprint(w, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(w, "\n(input closed)")
				return nil
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || sess.Select(n-1) != nil {
				fmt.Fprintf(w, "Enter a number from 1 to %d.", len(cur.Options))
			}
		}

		if sess.Selected() == cur.CorrectIndex {
			fmt.Fprintln(w, "✓ Correct!")
		} else {
			fmt.Fprintf(w, "✗ Not quite. Answer: %s\n", cur.CorrectOption())
		}
		if cur.Explanation != "" {
			fmt.Fprintf(w, "Explanation: %s\n", cur.Explanation)
		}
		fmt.Fprintln(w)

		if err := sess.Next(); err != nil {
			return err
		}
	}

	res, err := sess.Result()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "── %s ──\n", res.Summary())

	if svc.Account == nil || svc.History == nil {
		return nil
	}
	rec, err := res.Record(svc.UserID())
	if err != nil {
		return err
	}
	if err := svc.History.SaveQuizResult(ctx, rec); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
