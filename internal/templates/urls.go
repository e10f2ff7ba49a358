package templates

import "fmt"

func IndexURL() string { return "/" }

func PublishedQuestionsURL() string { return "/published_questions/" }

func AddQuestionURL() string { return "/add_question/" }

func DetailURL(questionID int) string { return fmt.Sprintf("/%d/", questionID) }

func ResultsURL(questionID int) string { return fmt.Sprintf("/%d/results/", questionID) }

func VoteURL(questionID int) string { return fmt.Sprintf("/%d/vote/", questionID) }
