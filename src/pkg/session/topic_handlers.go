package session

import (
	"fmt"
	"strconv"
	"strings"

	"dailyfocus/local-app/src/pkg/model"
)

func topicAt(s *Session, path string) (model.LearningTopic, error) {
	return s.DataManager.TopicManager.Resolve(path)
}

func linkNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid link number %q: %w", arg, err)
	}
	return n, nil
}

func handleTopicAdd(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.TopicManager.Add(strings.Join(cmd.Args, " ")); err != nil {
		return nil, fmt.Errorf("failed to add topic: %w", err)
	}
	return Message("Topic added"), nil
}

func handleTopicSub(s *Session, cmd model.Command) (interface{}, error) {
	parent, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.AddSubtopic(parent.ID, strings.Join(cmd.Args[1:], " ")); err != nil {
		return nil, fmt.Errorf("failed to add subtopic: %w", err)
	}
	return Message(fmt.Sprintf("Subtopic added under %s", cmd.Args[0])), nil
}

func handleTopicTitle(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.UpdateTitle(t.ID, strings.Join(cmd.Args[1:], " ")); err != nil {
		return nil, err
	}
	return Message("Topic renamed"), nil
}

// handleTopicNotes replaces the notes; with no text it clears them.
func handleTopicNotes(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.UpdateNotes(t.ID, strings.Join(cmd.Args[1:], " ")); err != nil {
		return nil, err
	}
	return Message("Notes updated"), nil
}

func handleTopicDelete(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.Delete(t.ID); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Deleted %q", t.Title)), nil
}

func handleTopicExpand(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.ToggleExpansion(t.ID); err != nil {
		return nil, err
	}
	return handleTopicList(s, cmd)
}

func handleTopicExpandAll(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.TopicManager.ExpandAll(); err != nil {
		return nil, err
	}
	return handleTopicList(s, cmd)
}

func handleTopicCollapseAll(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.TopicManager.CollapseAll(); err != nil {
		return nil, err
	}
	return handleTopicList(s, cmd)
}

func handleTopicLink(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.AddLink(t.ID, cmd.Args[1]); err != nil {
		return nil, err
	}
	return Message("Link added"), nil
}

func handleTopicUnlink(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	n, err := linkNumber(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.DeleteLink(t.ID, n); err != nil {
		return nil, err
	}
	return Message("Link removed"), nil
}

func handleTopicRelink(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	n, err := linkNumber(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.UpdateLink(t.ID, n, cmd.Args[2]); err != nil {
		return nil, err
	}
	return Message("Link updated"), nil
}

func handleTopicBlog(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TopicManager.ToggleBlogPost(t.ID); err != nil {
		return nil, err
	}
	if t.BlogPost.Written {
		return Message("Blog post marked as not written"), nil
	}
	return Message("Blog post marked as written"), nil
}

func handleTopicBlogURL(s *Session, cmd model.Command) (interface{}, error) {
	t, err := topicAt(s, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	url := ""
	if len(cmd.Args) > 1 {
		url = cmd.Args[1]
	}
	if err := s.DataManager.TopicManager.SetBlogPostURL(t.ID, url); err != nil {
		return nil, err
	}
	return Message("Blog post URL updated"), nil
}

func handleTopicList(s *Session, cmd model.Command) (interface{}, error) {
	tm := s.DataManager.TopicManager
	return TopicListResult{WeekID: tm.CurrentWeekID(), Topics: tm.Topics()}, nil
}
