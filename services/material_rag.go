package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Lộ trình sinh từ tài liệu là đồ thị node/edge phẳng kèm toạ độ vẽ,
// khác hẳn cây phân cấp của lộ trình theo chủ đề. Hai dạng này đi qua
// cùng đường đọc nhưng được phân biệt bằng SourceType, không ép kiểu.

type GraphPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GraphNodeData struct {
	Label string `json:"label"`
}

type GraphNode struct {
	ID       string        `json:"id"`
	Data     GraphNodeData `json:"data"`
	Position GraphPosition `json:"position"`
}

type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type DocGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// EmptyDocGraph là giá trị fallback khi không parse được output của
// model: rỗng nhưng hợp lệ, không bao giờ là nil.
func EmptyDocGraph() *DocGraph {
	return &DocGraph{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
}

const docRoadmapPromptTemplate = `You are an educational curriculum planner. Analyze the following text extracted from a study material.
Create a structured learning roadmap with 5-10 key topics (nodes) that cover the main concepts in this material.

Difficulty Level: %s

Text Content Sample:
%s

Refine the topics to be suitable for the difficulty level.

Instructions:
1. Output ONLY a valid JSON object.
2. Do NOT include any introductory or concluding text.
3. Do NOT include Markdown formatting.

Format Requirement:
{
    "nodes": [
        { "id": "1", "data": { "label": "Topic Name" }, "position": { "x": 100, "y": 100 } }
    ],
    "edges": [
        { "id": "e1-2", "source": "1", "target": "2" }
    ]
}

Make sure the layout (x,y positions) resembles a tree or flow chart (top to bottom).`

// GenerateRoadmapFromDocument sinh đồ thị lộ trình từ mẫu văn bản đầu
// tài liệu. Lỗi transport nổi lên; output hỏng hạ cấp về đồ thị rỗng.
func (s *Service) GenerateRoadmapFromDocument(ctx context.Context, sampleText, difficulty string) (*DocGraph, error) {
	prompt := fmt.Sprintf(docRoadmapPromptTemplate, difficulty, sampleText)

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{Temperature: 0.3})
	if err != nil {
		return nil, err
	}

	data, err := ExtractJSONObject(raw)
	if err != nil {
		s.Logger.Warn("không parse được lộ trình từ tài liệu, dùng đồ thị rỗng",
			zap.Error(err))
		return EmptyDocGraph(), nil
	}

	var graph DocGraph
	if err := json.Unmarshal(data, &graph); err != nil {
		s.Logger.Warn("JSON lộ trình tài liệu sai cấu trúc, dùng đồ thị rỗng",
			zap.Error(err))
		return EmptyDocGraph(), nil
	}
	if graph.Nodes == nil {
		graph.Nodes = []GraphNode{}
	}
	if graph.Edges == nil {
		graph.Edges = []GraphEdge{}
	}
	return &graph, nil
}

const ragContentPromptTemplate = `%s

Target Audience: %s

Context from Material:
%s

Task:
1. Explain '%s' using ONLY the information from the context.
2. If the context doesn't fully cover it, generalize based on the topic but mention that it wasn't fully in the text.
3. Format the output using clear Markdown (headings, bullet points, bold text).

Output Format:
Markdown text only. No JSON.`

// GenerateRAGContent sinh nội dung giảng giải cho một node dựa trên các
// đoạn truy xuất từ chỉ mục của tài liệu. Output là Markdown, không cần
// trích JSON; output rỗng coi như lỗi upstream.
func (s *Service) GenerateRAGContent(ctx context.Context, index *VectorIndex, nodeLabel, difficulty string, interest *string) (*ContentPayload, error) {
	chunks, err := index.Query(ctx, nodeLabel, 3)
	if err != nil {
		return nil, err
	}
	contextText := strings.Join(chunks, "\n\n")

	systemPrompt := fmt.Sprintf("You are a helpful tutor. Explain the topic '%s' based STRICTLY on the provided context.", nodeLabel)
	if interest != nil && *interest != "" {
		systemPrompt += fmt.Sprintf(" Connect the explanation to '%s' to make it engaging, but keep the core facts true to the context.", *interest)
	}

	prompt := fmt.Sprintf(ragContentPromptTemplate, systemPrompt, difficulty, contextText, nodeLabel)

	raw, err := s.Gen.Generate(ctx, prompt, GenerateOptions{Temperature: 0.3})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &UpstreamError{Op: "rag content", Err: fmt.Errorf("model trả nội dung rỗng")}
	}

	return &ContentPayload{
		Content:       raw,
		Images:        []string{},
		Videos:        []string{},
		QuizQuestions: []QuizQuestion{},
	}, nil
}
