// Package score converte o resultado bruto do teste (acertos/total) no QI
// estimado e nos textos descritivos exibidos no relatório. Tudo aqui é função
// pura sobre constantes de negócio; os valores são heurísticas de apresentação
// e devem ser preservados exatamente como estão.
package score

import "math"

// IQ aplica a transformação afim fixa sobre o percentual de acerto,
// ancorada em 70: round(70 + percentual * 0.6).
func IQ(correct, total int) int {
	if total <= 0 {
		return 0
	}
	percent := float64(correct) / float64(total) * 100
	return int(math.Round(70 + percent*0.6))
}

// Percentage é a taxa de acerto arredondada, usada pelo perfil cognitivo.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

type Interpretation struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	Careers         []string `json:"careers"`
}

type PerformanceLevel struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

type CognitiveProfile struct {
	LogicalReasoning   int `json:"logical_reasoning"`
	PatternRecognition int `json:"pattern_recognition"`
	WorkingMemory      int `json:"working_memory"`
	ProcessingSpeed    int `json:"processing_speed"`
	VerbalReasoning    int `json:"verbal_reasoning"`
}

type ImprovementArea struct {
	Area string `json:"area"`
	Tip  string `json:"tip"`
}

type DistributionBand struct {
	Range string `json:"range"`
	Share string `json:"share"`
}

// Interpret seleciona a faixa detalhada pelo QI. As faixas são avaliadas da
// mais alta para a mais baixa, com limite inferior inclusivo.
func Interpret(iq int) Interpretation {
	switch {
	case iq >= 145:
		return Interpretation{
			Title:       "Genialidade Excepcional",
			Description: "Você demonstra capacidades cognitivas extraordinárias, comparáveis aos maiores pensadores da história.",
			Characteristics: []string{
				"Capacidade de resolver problemas extremamente complexos",
				"Pensamento abstrato altamente desenvolvido",
				"Habilidade excepcional de ver conexões não óbvias",
				"Potencial para contribuições científicas ou intelectuais significativas",
			},
			Careers: []string{"Pesquisa científica avançada", "Matemática teórica", "Física quântica", "Filosofia acadêmica", "Engenharia aeroespacial"},
		}
	case iq >= 130:
		return Interpretation{
			Title:       "Superdotação Intelectual",
			Description: "Você possui habilidades cognitivas significativamente acima da média, colocando-o entre os mais inteligentes.",
			Characteristics: []string{
				"Excelente capacidade de aprendizado rápido",
				"Forte raciocínio analítico e abstrato",
				"Habilidade natural para resolver problemas complexos",
				"Facilidade com conceitos técnicos e teóricos avançados",
			},
			Careers: []string{"Medicina especializada", "Engenharia de software", "Arquitetura", "Direito", "Ciência de dados", "Consultoria estratégica"},
		}
	case iq >= 120:
		return Interpretation{
			Title:       "Inteligência Superior",
			Description: "Você demonstra capacidades cognitivas claramente acima da média, com excelente potencial acadêmico e profissional.",
			Characteristics: []string{
				"Boa capacidade de análise crítica",
				"Facilidade para aprender novos conceitos",
				"Pensamento lógico bem desenvolvido",
				"Habilidade para trabalhos que exigem raciocínio complexo",
			},
			Careers: []string{"Gestão empresarial", "Contabilidade", "Programação", "Ensino superior", "Análise financeira", "Marketing estratégico"},
		}
	case iq >= 110:
		return Interpretation{
			Title:       "Inteligência Acima da Média",
			Description: "Suas habilidades cognitivas estão acima da maioria da população, com bom potencial para desenvolvimento.",
			Characteristics: []string{
				"Capacidade sólida de raciocínio",
				"Bom desempenho em tarefas analíticas",
				"Habilidade para aprender com prática",
				"Potencial para posições de liderança",
			},
			Careers: []string{"Administração", "Vendas técnicas", "Recursos humanos", "Design", "Gestão de projetos", "Empreendedorismo"},
		}
	case iq >= 90:
		return Interpretation{
			Title:       "Inteligência Média",
			Description: "Você está na faixa de inteligência da maioria da população, com equilíbrio entre diferentes habilidades.",
			Characteristics: []string{
				"Capacidade funcional de raciocínio",
				"Habilidade para aprender com dedicação",
				"Bom desempenho em tarefas práticas",
				"Potencial para crescimento com treinamento",
			},
			Careers: []string{"Atendimento ao cliente", "Operações", "Suporte técnico", "Vendas", "Logística", "Assistência administrativa"},
		}
	default:
		return Interpretation{
			Title:       "Potencial em Desenvolvimento",
			Description: "Suas habilidades cognitivas têm grande espaço para crescimento através de prática e treinamento focado.",
			Characteristics: []string{
				"Capacidade de aprendizado prático",
				"Habilidade para tarefas estruturadas",
				"Potencial de melhoria com treino cognitivo",
				"Força em habilidades práticas e manuais",
			},
			Careers: []string{"Trabalhos manuais especializados", "Artesanato", "Serviços operacionais", "Agricultura", "Manutenção"},
		}
	}
}

func Performance(iq int) PerformanceLevel {
	switch {
	case iq >= 130:
		return PerformanceLevel{Level: "Excepcional", Description: "Inteligência muito superior à média"}
	case iq >= 120:
		return PerformanceLevel{Level: "Superior", Description: "Acima da média populacional"}
	case iq >= 110:
		return PerformanceLevel{Level: "Médio Superior", Description: "Inteligência acima da média"}
	case iq >= 90:
		return PerformanceLevel{Level: "Médio", Description: "Inteligência na média"}
	default:
		return PerformanceLevel{Level: "Médio Inferior", Description: "Há espaço para crescimento"}
	}
}

// Profile calcula as cinco dimensões cognitivas como funções lineares por
// partes do percentual de acerto.
func Profile(percentage int) CognitiveProfile {
	p := float64(percentage)

	dim := func(threshold, base, above, floor, slope float64) int {
		if p >= threshold {
			return int(math.Round(base + (p-threshold)*above))
		}
		return int(math.Round(floor + p*slope))
	}

	return CognitiveProfile{
		LogicalReasoning:   dim(70, 85, 1.0, 60, 0.35),
		PatternRecognition: dim(65, 80, 0.5, 55, 0.38),
		WorkingMemory:      dim(60, 75, 0.6, 50, 0.42),
		ProcessingSpeed:    dim(75, 90, 0.4, 65, 0.33),
		VerbalReasoning:    dim(55, 70, 0.65, 45, 0.45),
	}
}

func Strengths(percentage int) []string {
	switch {
	case percentage >= 75:
		return []string{
			"🎯 Excelente raciocínio lógico-matemático",
			"🧩 Alta capacidade de resolução de problemas complexos",
			"⚡ Processamento rápido de informações",
		}
	case percentage >= 60:
		return []string{
			"✅ Bom raciocínio analítico",
			"🔍 Capacidade de identificar padrões",
			"📊 Pensamento estruturado",
		}
	case percentage >= 50:
		return []string{
			"💡 Raciocínio lógico funcional",
			"🎲 Capacidade básica de análise",
			"🔄 Processamento adequado de informações",
		}
	default:
		return []string{
			"🌱 Potencial para desenvolvimento",
			"💪 Capacidade de aprendizado",
			"🎯 Determinação em completar desafios",
		}
	}
}

func ImprovementAreas(percentage int) []ImprovementArea {
	var areas []ImprovementArea
	if percentage < 75 {
		areas = append(areas, ImprovementArea{
			Area: "Raciocínio Sequencial",
			Tip:  "Pratique sequências numéricas e padrões lógicos diariamente. Apps como Lumosity podem ajudar.",
		})
	}
	if percentage < 65 {
		areas = append(areas, ImprovementArea{
			Area: "Velocidade de Processamento",
			Tip:  "Exercícios de atenção focada e jogos de raciocínio rápido fortalecem essa habilidade.",
		})
	}
	if percentage < 80 {
		areas = append(areas, ImprovementArea{
			Area: "Memória de Trabalho",
			Tip:  "Pratique exercícios de memorização curta e jogos de memória para melhorar essa capacidade.",
		})
	}
	return areas
}

func PopulationComparison(iq int) string {
	switch {
	case iq >= 145:
		return "Seu QI é de genialidade excepcional! Você se destaca entre os 0.1% mais brilhantes da população, com um potencial intelectual raríssimo. Suas capacidades cognitivas são extraordinárias, permitindo-lhe resolver problemas de altíssima complexidade e ver conexões que a maioria não percebe. Você tem um potencial imenso para inovações e contribuições significativas em qualquer campo que escolher."
	case iq >= 130:
		return "Você possui superdotação intelectual, colocando-o entre os 2% mais inteligentes do mundo. Suas capacidades são notáveis! Você demonstra uma habilidade excepcional para aprender rapidamente, raciocinar de forma analítica e abstrata, e resolver problemas complexos com facilidade. Este é um indicativo de um grande potencial para liderança e sucesso em áreas que exigem pensamento crítico e inovação."
	case iq >= 120:
		return "Sua inteligência é superior à média! Você faz parte dos 9% da população com as maiores capacidades cognitivas. Isso significa que você tem uma excelente capacidade de análise crítica, facilidade para aprender novos conceitos e um pensamento lógico bem desenvolvido. Você está bem posicionado para se destacar em ambientes acadêmicos e profissionais que demandam raciocínio complexo."
	case iq >= 110:
		return "Você demonstra inteligência acima da média, superando 75% da população. Um excelente potencial para o sucesso! Suas habilidades cognitivas permitem um bom desempenho em tarefas analíticas e uma capacidade sólida de raciocínio. Com dedicação, você pode alcançar posições de destaque e continuar a desenvolver suas capacidades para atingir seus objetivos."
	case iq >= 90:
		return "Seu QI está na faixa da média populacional. Com dedicação e estratégias de aprendizado, você pode expandir ainda mais suas habilidades cognitivas. Você possui uma capacidade funcional de raciocínio e bom desempenho em tarefas práticas. O autoconhecimento de suas capacidades é o primeiro passo para um crescimento contínuo e para maximizar seu potencial."
	case iq >= 70:
		return "Seu QI indica um potencial em desenvolvimento. Com exercícios cognitivos e foco, você pode fortalecer suas capacidades e alcançar novos patamares. Você tem a capacidade de aprendizado prático e pode se beneficiar muito de treinamentos focados em raciocínio lógico e memória. Pequenas práticas diárias podem gerar grandes avanços em suas habilidades cognitivas."
	default:
		return "Seu QI sugere que há um grande espaço para o desenvolvimento cognitivo. A prática regular de desafios mentais pode trazer melhorias significativas. Concentre-se em atividades que estimulem o raciocínio, como quebra-cabeças e leitura, para fortalecer suas habilidades. Lembre-se que a inteligência é maleável e pode ser aprimorada com esforço e as estratégias corretas."
	}
}

// Distribution é a tabela fixa de distribuição de QI exibida no relatório.
func Distribution() []DistributionBand {
	return []DistributionBand{
		{Range: "QI 145+: Genialidade", Share: "0.1%"},
		{Range: "QI 130-144: Superdotação", Share: "2.1%"},
		{Range: "QI 120-129: Superior", Share: "6.7%"},
		{Range: "QI 110-119: Acima da média", Share: "16.1%"},
		{Range: "QI 90-109: Média", Share: "50%"},
		{Range: "QI 80-89: Abaixo da média", Share: "16.1%"},
		{Range: "QI 70-79: Limítrofe", Share: "6.7%"},
	}
}
