package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tdnghia/superhero-catalog/config"
	"github.com/tdnghia/superhero-catalog/entity"
	infraPkg "github.com/tdnghia/superhero-catalog/infra"
	"github.com/tdnghia/superhero-catalog/repository"
)

type heroFixture struct {
	hero   entity.Superhero
	images []string
}

var fixtures = []heroFixture{
	{
		hero: entity.Superhero{
			Nickname:          "Superman",
			RealName:          "Clark Kent",
			OriginDescription: "Born Kal-El on the planet Krypton, rocketed to Earth as an infant by his scientist father Jor-El moments before Krypton's destruction. Raised by Jonathan and Martha Kent in Smallville, Kansas.",
			Superpowers:       "Solar energy absorption, super strength, flight, heat vision, x-ray vision, super speed, invulnerability, freeze breath",
			CatchPhrase:       "Look, up in the sky, it's a bird, it's a plane, it's Superman!",
		},
		images: []string{
			"https://images.unsplash.com/photo-1590341328520-63256eb32bc3?q=80&w=687&auto=format&fit=crop",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Batman",
			RealName:          "Bruce Wayne",
			OriginDescription: "Witnessed his parents' murder as a child in Crime Alley. Dedicated his life to fighting crime and trained extensively in martial arts, detective skills, and technology.",
			Superpowers:       "Genius-level intellect, martial arts mastery, advanced technology, stealth, detective skills, vast wealth",
			CatchPhrase:       "I am Batman!",
		},
		images: []string{
			"seed/images/batman-1.jpg",
			"seed/images/batman-2.jpg",
			"seed/images/batman-3.jpg",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Wonder Woman",
			RealName:          "Diana Prince",
			OriginDescription: "Amazonian princess from the island of Themyscira, daughter of Queen Hippolyta. Gifted with powers by the Greek gods to protect mankind.",
			Superpowers:       "Super strength, flight, lasso of truth, bulletproof bracelets, enhanced speed and agility, warrior training",
			CatchPhrase:       "Great Hera! By the gods of Olympus!",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Spider-Man",
			RealName:          "Peter Parker",
			OriginDescription: "Teenager bitten by a radioactive spider during a school field trip. Learned that with great power comes great responsibility.",
			Superpowers:       "Wall-crawling, spider-sense, super strength, agility, web-shooting, enhanced reflexes",
			CatchPhrase:       "With great power comes great responsibility!",
		},
		images: []string{
			"seed/images/spidey-1.jpg",
			"seed/images/spidey-2.jpg",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Deadpool",
			RealName:          "Wade Wilson",
			OriginDescription: "A former special forces operative turned mercenary, diagnosed with terminal cancer. Experiments in the Weapon X program gave him a superhuman healing factor, cured the cancer and left his body heavily scarred and his mind unstable.",
			Superpowers:       "Regenerative healing factor, superhuman agility, master martial artist, expert marksman, rapid cellular regeneration, immunity to disease, resistance to telepathy",
			CatchPhrase:       "Chimichangas! Maximum effort!",
		},
		images: []string{
			"seed/images/deadpool-1.jpg",
			"seed/images/deadpool-2.jpg",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Aquaman",
			RealName:          "Arthur Curry",
			OriginDescription: "Half-human, half-Atlantean, rightful king of the underwater kingdom of Atlantis. Born to a lighthouse keeper and an Atlantean queen.",
			Superpowers:       "Underwater breathing, telepathic communication with sea life, super strength, durability, trident mastery, hydrokinesis",
			CatchPhrase:       "By the power of the seas!",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Thor",
			RealName:          "Thor Odinson",
			OriginDescription: "God of Thunder from Asgard, one of the Nine Realms. Wielder of the mystical hammer Mjolnir, protector of Earth and Asgard.",
			Superpowers:       "God-like strength, flight, weather control, Mjolnir mastery, immortality, lightning manipulation",
			CatchPhrase:       "For Asgard! By Odin's beard!",
		},
		images: []string{
			"seed/images/thor-1.jpg",
			"seed/images/thor-2.jpg",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Iron Man",
			RealName:          "Tony Stark",
			OriginDescription: "Genius billionaire inventor who built a powered suit of armor to escape captivity and later used it to protect the world.",
			Superpowers:       "Powered armor suit, genius intellect, advanced technology, flight, repulsors, vast wealth",
			CatchPhrase:       "I am Iron Man!",
		},
		images: []string{
			"https://images.unsplash.com/photo-1626278664285-f796b9ee7806?q=80&w=1074&auto=format&fit=crop",
		},
	},
	{
		hero: entity.Superhero{
			Nickname:          "Wolverine",
			RealName:          "Logan",
			OriginDescription: "Mutant with healing factor and retractable claws, subjected to experiments that bonded adamantium to his skeleton.",
			Superpowers:       "Regenerative healing, adamantium claws and skeleton, enhanced senses, longevity, combat expertise",
			CatchPhrase:       "I'm the best there is at what I do, but what I do best isn't very nice.",
		},
		images: []string{
			"seed/images/wolverine-1.jpg",
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)
	ctx := context.Background()

	log.Println("Seeding superhero catalog...")

	for _, fixture := range fixtures {
		hero := fixture.hero
		if err := repo.SuperheroRepo.Create(ctx, &hero); err != nil {
			log.Printf("Failed to seed hero %s: %v", hero.Nickname, err)
			continue
		}
		log.Printf("Added hero: %s (ID: %d)", hero.Nickname, hero.ID)

		var rows []entity.SuperheroImage
		for i, image := range fixture.images {
			if strings.HasPrefix(image, "http") {
				rows = append(rows, entity.SuperheroImage{
					SuperheroID: hero.ID,
					ImageURL:    image,
					ImageType:   entity.ImageTypeURL,
					AltText:     fmt.Sprintf("%s image %d", hero.Nickname, i+1),
				})
				continue
			}

			buf, err := os.ReadFile(image)
			if err != nil {
				log.Printf("  image file not found, skipping: %s", image)
				continue
			}
			url, err := infra.Images.ProcessAndSave(buf, hero.ID, i)
			if err != nil {
				log.Printf("  failed to process %s: %v", image, err)
				continue
			}
			rows = append(rows, entity.SuperheroImage{
				SuperheroID: hero.ID,
				ImageURL:    url,
				ImageType:   entity.ImageTypeUpload,
				AltText:     fmt.Sprintf("%s image %d", hero.Nickname, i+1),
			})
		}
		if err := repo.ImageRepo.CreateBatch(ctx, rows); err != nil {
			log.Printf("  failed to insert %d images for %s: %v", len(rows), hero.Nickname, err)
			continue
		}
		if len(rows) > 0 {
			log.Printf("  added %d images", len(rows))
		}
	}

	heroes, _ := repo.SuperheroRepo.Count(ctx)
	images, _ := repo.ImageRepo.Count(ctx)
	log.Printf("Seeding done: %d heroes, %d images", heroes, images)
}
