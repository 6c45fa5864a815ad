package services

import (
	"context"
	"encoding/json"
	"fmt"
)

// RoadmapNode là một node trong cây lộ trình theo chủ đề. ID theo quy ước
// đường dẫn chấm phân cấp ("1", "1.2"). MasteryScore/Status chỉ được gắn
// lúc đọc (overlay), không lưu trong cây.
type RoadmapNode struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Description  string        `json:"description"`
	Children     []RoadmapNode `json:"children"`
	MasteryScore int           `json:"mastery_score"`
	Status       string        `json:"status"`
}

type RoadmapTree struct {
	Topic      string        `json:"topic"`
	Difficulty string        `json:"difficulty"`
	Language   string        `json:"language"`
	Roadmap    []RoadmapNode `json:"roadmap"`
}

const plannerPromptTemplate = `You are an expert curriculum planner.
Create a hierarchical learning roadmap for the given topic and difficulty level.

The output must be a valid JSON object with the following structure:
{
    "topic": "The Topic Name",
    "roadmap": [
        {
            "id": "1",
            "label": "Main Concept 1",
            "description": "Brief description",
            "children": [
                {
                    "id": "1.1",
                    "label": "Sub Concept 1.1",
                    "description": "Brief description",
                    "children": []
                }
            ]
        }
    ]
}

Rules:
1. Break down the topic into logical steps, prerequisites first.
2. Ensure the difficulty matches the user's request (%s).
3. Use nested children for subtopics.
4. Keep descriptions concise.
5. IMPORTANT: Generate the roadmap labels and descriptions in %s language.

Topic: %s
Difficulty: %s
Language: %s`

// GenerateRoadmap sinh cây lộ trình từ tên chủ đề bằng một lượt gọi
// model. Không ghi storage; validate cấu trúc trước khi trả về.
func (s *Service) GenerateRoadmap(ctx context.Context, topic, difficulty, language string) (*RoadmapTree, error) {
	prompt := fmt.Sprintf(plannerPromptTemplate, difficulty, language, topic, difficulty, language)

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{
		Temperature:      0.2,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var tree RoadmapTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if err := validateRoadmapTree(&tree); err != nil {
		return nil, err
	}

	if tree.Difficulty == "" {
		tree.Difficulty = difficulty
	}
	if tree.Language == "" {
		tree.Language = language
	}
	return &tree, nil
}

func validateRoadmapTree(tree *RoadmapTree) error {
	if tree.Topic == "" {
		return &ValidationError{Msg: "thiếu trường topic"}
	}
	if len(tree.Roadmap) == 0 {
		return &ValidationError{Msg: "lộ trình không có node nào"}
	}
	seen := map[string]bool{}
	return checkNodes(tree.Roadmap, seen)
}

func checkNodes(nodes []RoadmapNode, seen map[string]bool) error {
	for i := range nodes {
		n := &nodes[i]
		if n.ID == "" || n.Label == "" {
			return &ValidationError{Msg: "node thiếu id hoặc label"}
		}
		if seen[n.ID] {
			return &ValidationError{Msg: "id node bị trùng: " + n.ID}
		}
		seen[n.ID] = true
		if err := checkNodes(n.Children, seen); err != nil {
			return err
		}
	}
	return nil
}
