package mockapi

import (
	contentv1 "github.com/lucasfiiresearch/pocket/api/content/v1"
)

func ptr[T any](v T) *T { return &v }

// Seed content in the shapes the production API returns. One video is
// inactive so the client's filter has something to drop.
var seedVideos = []contentv1.Video{
	{
		ID:          "1",
		Title:       "Análise Completa do Mercado de FIIs",
		Description: "Entenda como funciona o mercado de fundos imobiliários e as melhores estratégias de investimento.",
		VideoID:     "dQw4w9WgXcQ",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Thumbnail:   "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		Order:       1,
		Active:      ptr(true),
		CreatedAt:   "2024-01-15T00:00:00Z",
	},
	{
		ID:          "2",
		Title:       "Teses de Investimento para Fundos de Papel",
		Description: "Descubra as melhores oportunidades em fundos de papel e como montar uma carteira equilibrada.",
		VideoID:     "dQw4w9WgXcQ",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Thumbnail:   "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		Order:       2,
		Active:      ptr(true),
		CreatedAt:   "2024-01-10T00:00:00Z",
	},
	{
		ID:          "3",
		Title:       "Como Analisar Fundos de Tijolo",
		Description: "Aprenda a avaliar fundos de tijolo e identificar os melhores ativos para sua carteira.",
		VideoID:     "dQw4w9WgXcQ",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Thumbnail:   "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		Order:       3,
		Active:      ptr(false),
		CreatedAt:   "2024-01-05T00:00:00Z",
	},
}

var seedReports = []contentv1.Report{
	{
		ID:        "r1",
		Title:     "Relatório Semanal #12",
		URL:       "https://lucasfiiresearch.com.br/reports/12.pdf",
		Date:      "2024-03-22",
		Category:  "semanal",
		CreatedAt: "2024-03-22T12:00:00Z",
	},
	{
		ID:        "r2",
		Title:     "Relatório Semanal #11",
		URL:       "https://lucasfiiresearch.com.br/reports/11.pdf",
		Date:      "2024-03-15",
		Category:  "semanal",
		CreatedAt: "2024-03-15T12:00:00Z",
	},
}

var seedEtfReports = []contentv1.EtfReport{
	{
		ID:        "e1",
		Title:     "Carteira de ETFs - Março",
		FileURL:   "https://lucasfiiresearch.com.br/etfs/marco.pdf",
		Active:    ptr(true),
		CreatedAt: "2024-03-01T00:00:00Z",
	},
	{
		ID:        "e2",
		Title:     "Carteira de ETFs - Fevereiro",
		FileURL:   "https://lucasfiiresearch.com.br/etfs/fevereiro.pdf",
		Active:    ptr(true),
		CreatedAt: "2024-02-01T00:00:00Z",
	},
}

var seedNotifications = []contentv1.Notification{
	{
		ID:          "n1",
		Title:       "Novo relatório disponível",
		Description: "O relatório semanal #12 já está disponível para leitura.",
		Type:        "pdf",
		Link:        "https://lucasfiiresearch.com.br/reports/12.pdf",
		CreatedAt:   "2024-03-22T13:00:00Z",
		Global:      true,
	},
	{
		ID:          "n2",
		Title:       "Nova tese de investimento",
		Description: "Assista à análise completa do mercado de FIIs.",
		Type:        "video",
		Link:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedAt:   "2024-03-20T09:00:00Z",
		Global:      true,
	},
}
