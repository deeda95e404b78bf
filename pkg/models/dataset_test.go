package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/medislate/pkg/models"
)

var _ = Describe("Dataset Models", func() {
	var ds *models.Dataset

	BeforeEach(func() {
		ds = &models.Dataset{
			Root: "/data/Lectures",
			Lectures: []models.Lecture{
				{
					ID:     "Lecture 1",
					Number: 1,
					Slides: []models.Slide{
						{ID: "Slide 1", Number: 1, ImagePath: "/l1/Slide 1.jpg"},
						{ID: "Slide 2", Number: 2, ImagePath: "/l1/Slide 2.jpg"},
					},
				},
				{ID: "Lecture 2", Number: 2},
				{
					ID:     "Lecture 3",
					Number: 3,
					Slides: []models.Slide{
						{ID: "Slide 1", Number: 1, ImagePath: "/l3/Slide 1.jpg"},
					},
				},
			},
		}
	})

	It("should count slides across lectures", func() {
		Expect(ds.SlideCount()).To(Equal(3))
	})

	It("should list image paths in dataset order", func() {
		Expect(ds.ImagePaths()).To(Equal([]string{
			"/l1/Slide 1.jpg",
			"/l1/Slide 2.jpg",
			"/l3/Slide 1.jpg",
		}))
	})

	It("should caption slides with their lecture", func() {
		slides := ds.Slides()
		Expect(slides).To(HaveLen(3))
		Expect(slides[2]).To(Equal(models.CaptionedImage{
			Path:    "/l3/Slide 1.jpg",
			Caption: "Lecture 3 / Slide 1",
		}))
	})

	It("should report zero slides for an empty dataset", func() {
		empty := &models.Dataset{}
		Expect(empty.SlideCount()).To(Equal(0))
		Expect(empty.ImagePaths()).To(BeEmpty())
	})
})
