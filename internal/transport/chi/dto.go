package chi

import (
	"github.com/marketkit/shopgraph/internal/domain/rules"
	recommenduc "github.com/marketkit/shopgraph/internal/usecase/recommend"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type productsResponse struct {
	Products []productDTO `json:"products"`
}

type productDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Brand    string   `json:"brand,omitempty"`
	Price    float64  `json:"price"`
	InStock  bool     `json:"in_stock"`
	Tags     []string `json:"tags"`
}

type recommendationRequest struct {
	ProductID      string   `json:"product_id"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	RequiredTags   []string `json:"required_tags,omitempty"`
	PreferredBrand string   `json:"preferred_brand,omitempty"`
	TopK           int      `json:"top_k,omitempty"`
}

type exactMatchDTO struct {
	Product     productDTO `json:"product"`
	Tags        []string   `json:"tags"`
	Explanation string     `json:"explanation"`
}

type alternativeDTO struct {
	Product     productDTO `json:"product"`
	Score       float64    `json:"score"`
	Depth       int        `json:"depth"`
	Tags        []string   `json:"tags"`
	Explanation string     `json:"explanation"`
}

type diagnosticsDTO struct {
	NodesVisited          int `json:"nodes_visited"`
	CandidatesFound       int `json:"candidates_found"`
	CandidatesAfterFilter int `json:"candidates_after_filter"`
}

type recommendationResponse struct {
	RequestedProduct productDTO       `json:"requested_product"`
	ExactMatch       *exactMatchDTO   `json:"exact_match,omitempty"`
	Alternatives     []alternativeDTO `json:"alternatives"`
	Message          string           `json:"message"`
	Diagnostics      diagnosticsDTO   `json:"diagnostics"`
}

type pathNodeDTO struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type pathEdgeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

type subgraphResponse struct {
	Nodes []pathNodeDTO `json:"nodes"`
	Edges []pathEdgeDTO `json:"edges"`
}

func tagsToDTO(tags []rules.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}

func recommendationToDTO(res recommenduc.Response) recommendationResponse {
	out := recommendationResponse{
		RequestedProduct: productToDTO(res.Requested),
		Alternatives:     make([]alternativeDTO, 0, len(res.Alternatives)),
		Message:          res.Message,
		Diagnostics: diagnosticsDTO{
			NodesVisited:          res.Diagnostics.NodesVisited,
			CandidatesFound:       res.Diagnostics.CandidatesFound,
			CandidatesAfterFilter: res.Diagnostics.CandidatesAfterFilter,
		},
	}
	if res.ExactMatch != nil {
		out.ExactMatch = &exactMatchDTO{
			Product:     productToDTO(res.ExactMatch.Product),
			Tags:        tagsToDTO(res.ExactMatch.Tags),
			Explanation: res.ExactMatch.Explanation,
		}
	}
	for _, alt := range res.Alternatives {
		out.Alternatives = append(out.Alternatives, alternativeDTO{
			Product:     productToDTO(alt.Product),
			Score:       alt.Score,
			Depth:       alt.Depth,
			Tags:        tagsToDTO(alt.Tags),
			Explanation: alt.Explanation,
		})
	}
	return out
}

func subgraphToDTO(sub recommenduc.Subgraph) subgraphResponse {
	out := subgraphResponse{
		Nodes: make([]pathNodeDTO, 0, len(sub.Nodes)),
		Edges: make([]pathEdgeDTO, 0, len(sub.Edges)),
	}
	for _, n := range sub.Nodes {
		out.Nodes = append(out.Nodes, pathNodeDTO{ID: n.ID, Kind: string(n.Kind), Name: n.Name})
	}
	for _, e := range sub.Edges {
		out.Edges = append(out.Edges, pathEdgeDTO{From: e.From, To: e.To, Kind: string(e.Kind)})
	}
	return out
}
