package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkowalski/watermarklab"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract an embedded watermark from an image",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringP("input", "i", "", "Watermarked image")
	extractCmd.Flags().StringP("output", "o", "", "Recovered watermark image (PNG)")
	extractCmd.Flags().Int("width", 0, "Watermark width in pixels")
	extractCmd.Flags().Int("height", 0, "Watermark height in pixels")
	extractCmd.Flags().String("method", "lsb", "Embedding method (lsb or dct)")
	extractCmd.Flags().Int("bitplane", 0, "LSB bit plane (0-7)")
	extractCmd.Flags().Int("blocksize", 8, "DCT block size")
	extractCmd.Flags().Float64("strength", 20, "DCT embedding strength")
	extractCmd.Flags().String("key", "", "Permutation key used at embed time")
	extractCmd.Flags().String("component", "Y", "Host plane (Y, Cb or Cr)")
	extractCmd.MarkFlagRequired("input")
	extractCmd.MarkFlagRequired("output")
	extractCmd.MarkFlagRequired("width")
	extractCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	method, _ := cmd.Flags().GetString("method")
	bitPlane, _ := cmd.Flags().GetInt("bitplane")
	blockSize, _ := cmd.Flags().GetInt("blocksize")
	strength, _ := cmd.Flags().GetFloat64("strength")
	key, _ := cmd.Flags().GetString("key")
	componentStr, _ := cmd.Flags().GetString("component")

	params, err := parseEmbedParams(method, bitPlane, blockSize, strength, key)
	if err != nil {
		return err
	}
	component, err := parseComponent(componentStr)
	if err != nil {
		return err
	}

	img, err := loadImage(inputPath)
	if err != nil {
		return err
	}
	state := watermarklab.NewImageState(img)
	state.ConvertToYCbCr()
	plane, err := state.Plane(component)
	if err != nil {
		return err
	}
	wm, err := watermarklab.Extract(plane, width, height, params)
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}
	if err := saveImage(outputPath, wm.Image()); err != nil {
		return err
	}
	fmt.Printf("Extracted %dx%d watermark to %s\n", width, height, outputPath)
	return nil
}
