package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/easykanban/easykanban/internal/apperr"
	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo user accounts",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

var demoUsers = []user.CreateUserInput{
	{Username: "johndoe", Name: "John Doe", Email: "johndoe@example.com", Password: "senha123", Bio: "Amo programar e aprender novas tecnologias."},
	{Username: "janedoe", Name: "Jane Doe", Email: "janedoe@example.com", Password: "senha456", Bio: "Desenvolvedora full-stack apaixonada por design."},
	{Username: "alice_smith", Name: "Alice Smith", Email: "alice.smith@example.com", Password: "alice@123", Bio: "Criativa e curiosa, sempre em busca de novos desafios."},
	{Username: "bob_jones", Name: "Bob Jones", Email: "bob.jones@example.com", Password: "bob@2025", Bio: "Entusiasta de software livre e segurança digital."},
	{Username: "lucas_pereira", Name: "Lucas Pereira", Email: "lucas.pereira@example.com", Password: "lucas123", Bio: "Apaixonado por inteligência artificial e machine learning."},
	{Username: "mariana_oliveira", Name: "Mariana Oliveira", Email: "mariana.oliveira@example.com", Password: "mariana@456", Bio: "Desenvolvedora front-end com foco em usabilidade."},
	{Username: "pedro_fernandes", Name: "Pedro Fernandes", Email: "pedro.fernandes@example.com", Password: "pedro789", Bio: "Gosto de explorar novos frameworks e ferramentas."},
	{Username: "claudia_souza", Name: "Claudia Souza", Email: "claudia.souza@example.com", Password: "claudia@123", Bio: "Criadora de conteúdo e entusiasta de UX/UI."},
	{Username: "roberto_gomes", Name: "Roberto Gomes", Email: "roberto.gomes@example.com", Password: "roberto@2025", Bio: "Desenvolvedor back-end e fã de tecnologias escaláveis."},
	{Username: "ana_martins", Name: "Ana Martins", Email: "ana.martins@example.com", Password: "ana12345", Bio: "Programadora apaixonada por desafios complexos."},
	{Username: "gustavo_costa", Name: "Gustavo Costa", Email: "gustavo.costa@example.com", Password: "gustavo@987", Bio: "Especialista em análise de dados e visualização."},
	{Username: "beatriz_silva", Name: "Beatriz Silva", Email: "beatriz.silva@example.com", Password: "beatriz@321", Bio: "Desenvolvedora web com interesse em acessibilidade."},
	{Username: "daniel_tavares", Name: "Daniel Tavares", Email: "daniel.tavares@example.com", Password: "daniel2025", Bio: "Estudante de ciência da computação e amante de algoritmos."},
	{Username: "laura_rosa", Name: "Laura Rosa", Email: "laura.rosa@example.com", Password: "laura@321", Bio: "Designer gráfica que adora trabalhar com dados."},
	{Username: "eduardo_correia", Name: "Eduardo Correia", Email: "eduardo.correia@example.com", Password: "eduardo@777", Bio: "Focado em otimização de processos e qualidade de código."},
	{Username: "karla_oliveira", Name: "Karla Oliveira", Email: "karla.oliveira@example.com", Password: "karla123", Bio: "Interessada em desenvolvimento de aplicações móveis."},
	{Username: "felipe_barbosa", Name: "Felipe Barbosa", Email: "felipe.barbosa@example.com", Password: "felipe@123", Bio: "Entusiasta de cloud computing e DevOps."},
	{Username: "sandra_lima", Name: "Sandra Lima", Email: "sandra.lima@example.com", Password: "sandra@456", Bio: "Programadora front-end com foco em performance."},
	{Username: "gustavo_ribeiro", Name: "Gustavo Ribeiro", Email: "gustavo.ribeiro@example.com", Password: "gustavo@789", Bio: "Aficionado por automação de testes e QA."},
	{Username: "patricia_santos", Name: "Patricia Santos", Email: "patricia.santos@example.com", Password: "patricia@2025", Bio: "Especialista em segurança cibernética e criptografia."},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate("up"); err != nil {
		return err
	}

	users := user.NewService(user.NewStore(db), auth.NewPasswordHasher())

	created := 0
	for _, input := range demoUsers {
		_, err := users.Find(ctx, input.Username)
		if err == nil {
			slog.Info("user already exists, skipping", "username", input.Username)
			continue
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("checking user %q: %w", input.Username, err)
		}

		u, err := users.Register(ctx, input)
		if err != nil {
			return fmt.Errorf("creating user %q: %w", input.Username, err)
		}
		slog.Info("created user", "username", u.Username, "id", u.ID)
		created++
	}

	fmt.Printf("\n=== Demo Data Seeded ===\n")
	fmt.Printf("Users:     %d created, %d already present\n", created, len(demoUsers)-created)
	fmt.Printf("\nTry it:\n")
	fmt.Printf("  curl -X POST -d '{\"email\":\"johndoe@example.com\",\"password\":\"senha123\"}' http://%s/api/users/login\n", cfg.Addr())

	return nil
}
